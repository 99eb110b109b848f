package hosts

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single line when validating from a reader.
const maxLineSize = 1 << 20

// Result is the outcome of validating a block of hosts text.
type Result struct {
	Valid bool
	// Dangerous holds every dangerous entry in source order. It is empty when Valid is false.
	Dangerous []string
	// Line is the 1-based number of the first malformed line (0 when Valid).
	Line int
	// Reason describes why Line is malformed.
	Reason string
}

// NeedsConfirmation reports whether the block is valid but contains dangerous entries,
// which must be confirmed by a human before they are committed.
func (r Result) NeedsConfirmation() bool {
	return r.Valid && len(r.Dangerous) > 0
}

// validator accumulates line results and stops at the first malformed line.
type validator struct {
	lineNo    int
	dangerous []string
	failed    *LineResult
}

func (v *validator) feed(line string) bool {
	v.lineNo++
	res := ValidateLine(line)
	switch res.Kind {
	case LineMalformed:
		v.failed = &res
		return false
	case LineDangerous:
		v.dangerous = append(v.dangerous, res.Entry)
	}
	return true
}

func (v *validator) result() Result {
	if v.failed != nil {
		return Result{Valid: false, Dangerous: []string{}, Line: v.lineNo, Reason: v.failed.Reason}
	}
	if v.dangerous == nil {
		v.dangerous = []string{}
	}
	return Result{Valid: true, Dangerous: v.dangerous}
}

// Validate validates a whole block of hosts text.
// The first malformed line makes the whole block invalid.
func Validate(text string) Result {
	v := &validator{}
	for text != "" {
		var line string
		line, text, _ = strings.Cut(text, "\n")
		if !v.feed(line) {
			break
		}
	}
	return v.result()
}

// ValidateReader validates hosts text read from r with the same rules as Validate.
func ValidateReader(r io.Reader) (Result, error) {
	v := &validator{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if !v.feed(scanner.Text()) {
			return v.result(), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{Dangerous: []string{}}, err
	}
	return v.result(), nil
}
