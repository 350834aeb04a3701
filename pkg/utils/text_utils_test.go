package utils

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

func TestFormatBigNumber(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{164, "164"},
		{999, "999"},
		{1_000, "1.0K"},
		{1_500, "1.5K"},
		{2_500_000, "2.5M"},
		{3_200_000_000, "3.2B"},
		{1_000_000_000_000, "1.0T"},
		{-5, "-5"},
	}

	for _, tt := range tests {
		if got := FormatBigNumber(tt.input); got != tt.want {
			t.Errorf("FormatBigNumber(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestWrapText 测试文本换行功能（basicfont 每个字符宽 7 像素）
func TestWrapText(t *testing.T) {
	face := text.NewGoXFace(basicfont.Face7x13)

	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{"短文本不换行", "short", 1000, []string{"short"}},
		{"按宽度换行", "abcdefghij", 35, []string{"abcde", "fghij"}},
		{"空文本", "", 100, []string{""}},
		{"宽度非法", "abc", 0, []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, face, tt.maxWidth)
			if len(lines) != len(tt.want) {
				t.Fatalf("WrapText lines: got %q, want %q", lines, tt.want)
			}
			for i := range lines {
				if lines[i] != tt.want[i] {
					t.Errorf("Line %d: got %q, want %q", i, lines[i], tt.want[i])
				}
			}
		})
	}
}
