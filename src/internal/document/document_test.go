package document

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lost-hosts/lost/src/internal/errors"
)

const (
	urlA = "https://example.com/a.txt"
	urlB = "http://lists.example.org/hosts"
)

func TestMarker(t *testing.T) {
	expected := "# LOST URL https://example.com/a.txt 192919291222//././././."
	if got := Marker(urlA); got != expected {
		t.Errorf("Marker() = %q, want %q", got, expected)
	}

	url, ok := URLFromMarker(expected)
	if !ok || url != urlA {
		t.Errorf("URLFromMarker() = %q, %v", url, ok)
	}

	if _, ok := URLFromMarker("# LOST URL ftp://example.com 192919291222//././././."); ok {
		t.Error("Expected non-http marker to be rejected")
	}
}

func TestParse_NoSeparator(t *testing.T) {
	raw := "127.0.0.1 localhost\n::1 localhost\n"

	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Preamble != raw {
		t.Errorf("Preamble = %q, want %q", doc.Preamble, raw)
	}
	if len(doc.Sources) != 0 {
		t.Errorf("Expected no sources, got %d", len(doc.Sources))
	}
	if got := doc.Serialize(); got != raw+Separator {
		t.Errorf("Serialize() = %q", got)
	}
}

func TestParse_Corrupted(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "separator removed",
			raw:  "127.0.0.1 localhost\n" + Marker(urlA) + "\n0.0.0.0 ads.example\n",
		},
		{
			name: "separator twice",
			raw:  "127.0.0.1 localhost" + Separator + Marker(urlA) + "\n0.0.0.0 a\n" + Separator,
		},
		{
			name: "entries before first marker",
			raw:  "127.0.0.1 localhost" + Separator + "0.0.0.0 stray.example\n" + Marker(urlA) + "\n0.0.0.0 a\n",
		},
		{
			name: "entries without marker",
			raw:  "127.0.0.1 localhost" + Separator + "0.0.0.0 stray.example\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.raw)
			if err == nil {
				t.Fatalf("Expected corrupted document error, got %+v", doc)
			}
			if !errors.HasCode(err, errors.ErrCodeCorruptedDocument) {
				t.Errorf("Expected %s, got %v", errors.ErrCodeCorruptedDocument, err)
			}
		})
	}
}

func TestParse_EmptyManagedRegion(t *testing.T) {
	for _, managed := range []string{"", "\n", "\r\n\r\n", "   \n\t\n"} {
		doc, err := Parse("127.0.0.1 localhost" + Separator + managed)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", managed, err)
		}
		if len(doc.Sources) != 0 {
			t.Errorf("Parse(%q): expected zero sources, got %d", managed, len(doc.Sources))
		}
	}
}

func TestParse_Sources(t *testing.T) {
	raw := "127.0.0.1 localhost\n# my stuff" + Separator +
		Marker(urlA) + "\n0.0.0.0 a1.example\n0.0.0.0 a2.example\n" +
		Marker(urlB) + "\n# header\n0.0.0.0 b1.example\n"

	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	expected := []Source{
		{Marker: Marker(urlA), URL: urlA, Content: "0.0.0.0 a1.example\n0.0.0.0 a2.example"},
		{Marker: Marker(urlB), URL: urlB, Content: "# header\n0.0.0.0 b1.example"},
	}
	if !reflect.DeepEqual(doc.Sources, expected) {
		t.Errorf("Sources = %#v, want %#v", doc.Sources, expected)
	}
	if doc.Preamble != "127.0.0.1 localhost\n# my stuff" {
		t.Errorf("Preamble = %q", doc.Preamble)
	}
	if got := doc.Serialize(); got != raw {
		t.Errorf("Serialize() did not reproduce the input:\n%q\n%q", got, raw)
	}
}

func TestRoundTrip(t *testing.T) {
	docs := []*Document{
		{Preamble: ""},
		{Preamble: "127.0.0.1 localhost\n"},
		{Preamble: "127.0.0.1 localhost", Sources: []Source{NewSource(urlA, "")}},
		{Preamble: "127.0.0.1 localhost", Sources: []Source{
			NewSource(urlA, "0.0.0.0 a.example\n"),
			NewSource(urlB, "\n\n0.0.0.0 b.example\r\n0.0.0.0 c.example"),
		}},
	}

	for i, doc := range docs {
		parsed, err := Parse(doc.Serialize())
		if err != nil {
			t.Fatalf("case %d: Parse() error = %v", i, err)
		}
		if parsed.Preamble != doc.Preamble {
			t.Errorf("case %d: Preamble = %q, want %q", i, parsed.Preamble, doc.Preamble)
		}
		if len(parsed.Sources) != len(doc.Sources) {
			t.Fatalf("case %d: got %d sources, want %d", i, len(parsed.Sources), len(doc.Sources))
		}
		for j := range doc.Sources {
			if parsed.Sources[j] != doc.Sources[j] {
				t.Errorf("case %d source %d: %#v, want %#v", i, j, parsed.Sources[j], doc.Sources[j])
			}
		}

		again, err := Parse(parsed.Serialize())
		if err != nil {
			t.Fatalf("case %d: second Parse() error = %v", i, err)
		}
		if again.Serialize() != parsed.Serialize() {
			t.Errorf("case %d: serialization is not stable", i)
		}
	}
}

func TestIndexLookups(t *testing.T) {
	doc := &Document{Sources: []Source{
		NewSource("http://example.com.evil.com/hosts", "0.0.0.0 x"),
		NewSource("http://example.com/hosts", "0.0.0.0 y"),
	}}

	if got := doc.IndexExact("http://example.com/hosts"); got != 1 {
		t.Errorf("IndexExact() = %d, want 1", got)
	}
	if got := doc.IndexExact("http://example.com"); got != -1 {
		t.Errorf("IndexExact() = %d, want -1", got)
	}
	if got := doc.IndexContaining("http://example.com"); got != 0 {
		t.Errorf("IndexContaining() = %d, want 0", got)
	}
}

func TestRemoveAt(t *testing.T) {
	doc := &Document{Sources: []Source{NewSource(urlA, "a"), NewSource(urlB, "b"), NewSource("https://c.example", "c")}}

	removed := doc.RemoveAt(1)
	if removed.URL != urlB {
		t.Errorf("Removed %q, want %q", removed.URL, urlB)
	}
	if len(doc.Sources) != 2 || doc.Sources[0].URL != urlA || doc.Sources[1].URL != "https://c.example" {
		t.Errorf("Unexpected sources after removal: %#v", doc.Sources)
	}
}

func TestNormalize(t *testing.T) {
	a := "\n0.0.0.0 a.example\r\n0.0.0.0 b.example\n\n"
	b := "0.0.0.0 a.example\n0.0.0.0 b.example"
	if Normalize(a) != Normalize(b) {
		t.Errorf("Normalize(%q) != Normalize(%q)", a, b)
	}
	if Normalize("0.0.0.0 a") == Normalize("0.0.0.0 b") {
		t.Error("Expected different content to differ")
	}
}

func TestContainsReservedText(t *testing.T) {
	tests := []struct {
		content  string
		expected bool
	}{
		{"0.0.0.0 ads.example\n", false},
		{"# LOST URL is a nice project\n", false},
		{"0.0.0.0 a\n" + strings.Trim(Separator, "\n") + "\n0.0.0.0 b", true},
		{"0.0.0.0 a\n" + Marker(urlB) + "\n0.0.0.0 b", true},
	}

	for _, tt := range tests {
		if got := ContainsReservedText(tt.content); got != tt.expected {
			t.Errorf("ContainsReservedText(%q) = %v, want %v", tt.content, got, tt.expected)
		}
	}
}

func TestLookup(t *testing.T) {
	doc := &Document{
		Preamble: "1.2.3.4 tracker.example",
		Sources: []Source{
			NewSource(urlA, "# ads\n0.0.0.0 ads.example tracker.example # both\n0.0.0.0 other.example"),
			NewSource(urlB, "0.0.0.0 TRACKER.example\nbroken line"),
		},
	}

	matches := doc.Lookup("tracker.example")
	expected := []Match{
		{URL: urlA, Entry: "0.0.0.0 ads.example tracker.example"},
		{URL: urlB, Entry: "0.0.0.0 TRACKER.example"},
	}
	if !reflect.DeepEqual(matches, expected) {
		t.Errorf("Lookup() = %#v, want %#v", matches, expected)
	}

	if got := doc.Lookup("missing.example"); len(got) != 0 {
		t.Errorf("Expected no matches, got %#v", got)
	}
}
