package document

import (
	"regexp"
	"strings"

	"github.com/lost-hosts/lost/src/internal/errors"
	"github.com/lost-hosts/lost/src/internal/hosts"
	"github.com/valyala/fasttemplate"
)

const (
	// Separator divides user-owned content from the sources managed by lost.
	Separator = "\n# ENTRIES MADE BY LOST START HERE, ADD CUSTOM ENTRIES ABOVE AND DO NOT EDIT THE BELOW\n"

	// MarkerTemplate is the comment line that opens every source block.
	MarkerTemplate = "# LOST URL {url} 192919291222//././././."

	markerPrefix = "\n# LOST URL"
)

var (
	markerTmpl = fasttemplate.New(MarkerTemplate, "{", "}")

	// markerLine finds marker lines in the managed region. Group 1 is the marker, group 2 the URL.
	markerLine = regexp.MustCompile(`(?m)^(# LOST URL (https?://\S+) 192919291222//\./\./\./\./\.)(?:\r?\n|\z)`)

	markerExact = regexp.MustCompile(`^# LOST URL (https?://\S+) 192919291222//\./\./\./\./\.$`)

	separatorLine = strings.Trim(Separator, "\n")

	newlineStripper = strings.NewReplacer("\n", "", "\r", "")
)

// Source is a subscribed blocklist stored in the managed region.
type Source struct {
	Marker  string
	URL     string
	Content string
}

// Document is the hosts file split into the user's preamble and the managed sources.
type Document struct {
	Preamble string
	Sources  []Source
}

// Marker renders the marker line for url.
func Marker(url string) string {
	return markerTmpl.ExecuteString(map[string]interface{}{"url": url})
}

// URLFromMarker extracts the source URL from a marker line.
func URLFromMarker(marker string) (string, bool) {
	m := markerExact.FindStringSubmatch(marker)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// NewSource builds a source record for url.
func NewSource(url, content string) Source {
	return Source{Marker: Marker(url), URL: url, Content: content}
}

// Normalize strips surrounding whitespace and every CR/LF, so that two versions of a
// source that differ only in line breaks compare equal.
func Normalize(content string) string {
	return strings.TrimSpace(newlineStripper.Replace(content))
}

// ContainsReservedText reports whether content carries the separator or a marker line.
// Storing such content would break the document structure on the next parse.
func ContainsReservedText(content string) bool {
	return strings.Contains(content, separatorLine) || markerLine.MatchString(content)
}

// Parse splits a hosts file into its preamble and managed sources.
// A document with a missing, duplicated or misplaced separator is rejected as corrupted.
func Parse(raw string) (*Document, error) {
	parts := strings.Split(raw, Separator)

	switch {
	case len(parts) == 1:
		if strings.Contains(parts[0], markerPrefix) {
			return nil, errors.NewCorruptedDocumentError("source markers found but the separator line was removed")
		}
		return &Document{Preamble: parts[0]}, nil
	case len(parts) > 2:
		return nil, errors.NewCorruptedDocumentError("separator line appears more than once")
	}

	doc := &Document{Preamble: parts[0]}
	managed := parts[1]
	if Normalize(managed) == "" {
		return doc, nil
	}

	matches := markerLine.FindAllStringSubmatchIndex(managed, -1)
	if len(matches) == 0 {
		return nil, errors.NewCorruptedDocumentError("entries below the separator do not belong to any source")
	}
	if strings.TrimSpace(managed[:matches[0][0]]) != "" {
		return nil, errors.NewCorruptedDocumentError("entries between the separator and the first source marker")
	}

	doc.Sources = make([]Source, 0, len(matches))
	for i, m := range matches {
		end := len(managed)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		doc.Sources = append(doc.Sources, Source{
			Marker: managed[m[2]:m[3]],
			URL:    managed[m[4]:m[5]],
			// The serializer terminates every block with one newline.
			Content: strings.TrimSuffix(managed[m[1]:end], "\n"),
		})
	}

	return doc, nil
}

// Serialize renders the document back into hosts file text.
func (d *Document) Serialize() string {
	var sb strings.Builder
	size := len(d.Preamble) + len(Separator)
	for _, src := range d.Sources {
		size += len(src.Marker) + len(src.Content) + 2
	}
	sb.Grow(size)

	sb.WriteString(d.Preamble)
	sb.WriteString(Separator)
	for _, src := range d.Sources {
		sb.WriteString(src.Marker)
		sb.WriteByte('\n')
		sb.WriteString(src.Content)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Bytes returns the serialized document.
func (d *Document) Bytes() []byte {
	return []byte(d.Serialize())
}

// IndexExact returns the index of the source whose marker equals Marker(url), or -1.
func (d *Document) IndexExact(url string) int {
	marker := Marker(url)
	for i, src := range d.Sources {
		if src.Marker == marker {
			return i
		}
	}
	return -1
}

// IndexContaining returns the index of the first source whose marker contains url, or -1.
func (d *Document) IndexContaining(url string) int {
	for i, src := range d.Sources {
		if strings.Contains(src.Marker, url) {
			return i
		}
	}
	return -1
}

// Append adds a source at the end of the managed region.
func (d *Document) Append(src Source) {
	d.Sources = append(d.Sources, src)
}

// RemoveAt deletes the source at index i, keeping the order of the others.
func (d *Document) RemoveAt(i int) Source {
	removed := d.Sources[i]
	d.Sources = append(d.Sources[:i:i], d.Sources[i+1:]...)
	return removed
}

// Match is a managed hosts entry that maps a looked-up hostname.
type Match struct {
	URL   string
	Entry string
}

// Lookup returns the managed entries that map hostname, in document order.
// The preamble is user-owned and is not inspected.
func (d *Document) Lookup(hostname string) []Match {
	var matches []Match
	for _, src := range d.Sources {
		content := src.Content
		for content != "" {
			var line string
			line, content, _ = strings.Cut(content, "\n")
			_, names, ok := hosts.ParseEntry(line)
			if !ok {
				continue
			}
			for _, name := range names {
				if strings.EqualFold(name, hostname) {
					matches = append(matches, Match{URL: src.URL, Entry: hosts.StripComment(line)})
					break
				}
			}
		}
	}
	return matches
}
