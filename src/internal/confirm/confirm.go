package confirm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/lost-hosts/lost/src/internal/registry"
	"golang.org/x/term"
)

const DefaultDelay = 10 * time.Second

type line struct {
	text string
	at   time.Time
}

// Terminal asks for confirmation on a line-oriented console.
// Answers typed before the deliberation delay has elapsed are discarded.
// Close stops the background reader once the terminal is no longer needed.
type Terminal struct {
	out   io.Writer
	delay time.Duration
	now   func() time.Time

	once    sync.Once
	in      io.Reader
	lines   chan line
	stopped chan struct{}

	closeOnce sync.Once
	done      chan struct{}
}

// NewTerminal creates a confirmer reading answers from in and writing prompts to out.
// A negative delay is treated as zero.
func NewTerminal(in io.Reader, out io.Writer, delay time.Duration) *Terminal {
	if delay < 0 {
		delay = 0
	}
	return &Terminal{
		in:    in,
		out:   out,
		delay: delay,
		now:   time.Now,
		done:  make(chan struct{}),
	}
}

// Close makes pending and future confirmations abort. The reader goroutine exits
// after the line it is currently waiting for, or at EOF.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() { close(t.done) })
	return nil
}

// Stdin returns a confirmer bound to the process console. When stdin is not a
// terminal nobody can read the warning, so every confirmation is refused.
func Stdin(delay time.Duration) registry.Confirmer {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Debugf("stdin is not a terminal, dangerous entries will be refused")
		return Refuse
	}
	return NewTerminal(os.Stdin, os.Stdout, delay)
}

func (t *Terminal) start() {
	t.once.Do(func() {
		t.lines = make(chan line)
		t.stopped = make(chan struct{})
		go func() {
			defer close(t.stopped)
			defer close(t.lines)
			scanner := bufio.NewScanner(t.in)
			for scanner.Scan() {
				select {
				case t.lines <- line{text: scanner.Text(), at: t.now()}:
				case <-t.done:
					return
				}
			}
		}()
	})
}

// ConfirmDangerous prints the entries and waits for an explicit "yes".
func (t *Terminal) ConfirmDangerous(entries []string, contextURL string) registry.Decision {
	select {
	case <-t.done:
		return registry.Abort
	default:
	}
	t.start()

	deadline := t.now().Add(t.delay)
	t.printWarning(entries, contextURL)

	if t.delay > 0 {
		fmt.Fprintf(t.out, "Take a moment to review them. You can answer in %s.\n", t.delay.Round(time.Second))
		timer := time.NewTimer(t.delay)
	wait:
		for {
			select {
			case <-timer.C:
				break wait
			case <-t.done:
				timer.Stop()
				return registry.Abort
			case l, ok := <-t.lines:
				if !ok {
					timer.Stop()
					return registry.Abort
				}
				log.Debugf("Ignoring early answer %q", l.text)
			}
		}
	}

	fmt.Fprint(t.out, "Write these entries anyway? [y/N]: ")
	for {
		select {
		case <-t.done:
			fmt.Fprintln(t.out)
			return registry.Abort
		case l, ok := <-t.lines:
			if !ok {
				// EOF
				fmt.Fprintln(t.out)
				return registry.Abort
			}
			if l.at.Before(deadline) {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(l.text)) {
			case "y", "yes":
				return registry.Accept
			default:
				return registry.Abort
			}
		}
	}
}

func (t *Terminal) printWarning(entries []string, contextURL string) {
	if contextURL != "" {
		fmt.Fprintf(t.out, "WARNING: the new content of %s redirects hostnames to public addresses:\n", contextURL)
	} else {
		fmt.Fprintln(t.out, "WARNING: this source redirects hostnames to public addresses:")
	}
	for _, entry := range entries {
		fmt.Fprintf(t.out, "  %s\n", entry)
	}
	fmt.Fprintln(t.out, "Entries like these can send your traffic to a server you do not control.")
}

// Refuse aborts every confirmation. It is used for unattended runs.
var Refuse registry.Confirmer = registry.ConfirmerFunc(func(entries []string, contextURL string) registry.Decision {
	if contextURL != "" {
		log.Warnf("Refusing %d entries from %s that point at public addresses", len(entries), contextURL)
	} else {
		log.Warnf("Refusing %d entries that point at public addresses", len(entries))
	}
	return registry.Abort
})
