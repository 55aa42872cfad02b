package scraper

import (
	"strings"
	"testing"
)

func TestVisibleText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"basic text",
			"<html><body><h1>Hello</h1><p>World</p></body></html>",
			"Hello World",
		},
		{
			"script skipped",
			"<html><body><p>visible</p><script>var hidden = 1;</script></body></html>",
			"visible",
		},
		{
			"style and noscript skipped",
			"<html><body><style>.a{color:red}</style><noscript>enable js</noscript><p>text</p></body></html>",
			"text",
		},
		{
			"whitespace normalized",
			"<p>  lots \n\t of   space  </p>",
			"lots of space",
		},
		{
			"empty document",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleText([]byte(tt.html))
			if got != tt.want {
				t.Errorf("VisibleText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"under limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hello"},
		{"zero max", "hello", 0, ""},
		{"multibyte not split", "héllo wörld", 7, "héllo w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateRunes(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateRunes_LongText(t *testing.T) {
	long := strings.Repeat("a", 5000)
	got := truncateRunes(long, 2000)
	if len(got) != 2000 {
		t.Errorf("truncated length = %d, want 2000", len(got))
	}
}
