package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Meč", "mec"},
		{"Helma odvahy", "helma_odvahy"},
		{"Ničitel   světů", "nicitel_svetu"},
		{"Příšerka #1!", "priserka_1"},
		{"already_an-id", "already_an-id"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ID(tt.name); got != tt.want {
				t.Errorf("ID(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestIDIdempotent(t *testing.T) {
	for _, name := range []string{"Meč", "Žluťoučký kůň", "  Dva  meče ", "Tělo+3", "ÅÄÖ"} {
		once := ID(name)
		if twice := ID(once); twice != once {
			t.Errorf("ID(ID(%q)) = %q, want %q", name, twice, once)
		}
	}
}

func TestRemoveAccents(t *testing.T) {
	if got := RemoveAccents("Příšerky"); got != "Priserky" {
		t.Errorf("RemoveAccents = %q, want %q", got, "Priserky")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "bonus text",
			text:  "Lze použít jen jednou, musí být v batohu",
			width: 35,
			want:  []string{"Lze použít jen jednou, musí být v", "batohu"},
		},
		{
			name:  "fits",
			text:  "krátký text",
			width: 35,
			want:  []string{"krátký text"},
		},
		{
			name:  "collapses whitespace",
			text:  "  a \n b\t c  ",
			width: 3,
			want:  []string{"a b", "c"},
		},
		{
			name:  "long word kept whole",
			text:  "x nejneobhospodařovávatelnějšími y",
			width: 10,
			want:  []string{"x", "nejneobhospodařovávatelnějšími", "y"},
		},
		{
			name:  "empty",
			text:  "   ",
			width: 10,
			want:  nil,
		},
		{
			name:  "no width",
			text:  "a  b",
			width: 0,
			want:  []string{"a b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Wrap() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapProperties(t *testing.T) {
	texts := []string{
		"Když ji zahraješ na hráče, ztratí svoji nejlepší věc a musí utéct od příšerky.",
		"Lze použít jen jednou, musí být v batohu",
		"a bb ccc dddd eeeee ffffff ggggggg",
		"slovo",
	}
	for _, text := range texts {
		for width := 1; width <= 40; width++ {
			lines := Wrap(text, width)
			for _, line := range lines {
				if n := utf8.RuneCountInString(line); n > width && strings.Contains(line, " ") {
					t.Errorf("Wrap(%q, %d): line %q has %d chars", text, width, line, n)
				}
			}
			normalized := strings.Join(strings.Fields(text), " ")
			if joined := strings.Join(lines, " "); joined != normalized {
				t.Errorf("Wrap(%q, %d) rejoined = %q, want %q", text, width, joined, normalized)
			}
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"čaroděj":        "Čaroděj",
		"ZNÁ TAJEMSTVÍ":  "Zná tajemství",
		"x":              "X",
		"žije v Brně":    "Žije v brně",
	}
	for in, want := range tests {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
