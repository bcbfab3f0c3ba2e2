package sgr

import "testing"

func TestSetGraphicAttributes(t *testing.T) {
	tests := []struct {
		attrs []GraphicAttribute
		want  string
	}{
		{[]GraphicAttribute{StyleNone}, "\x1B[0m"},
		{[]GraphicAttribute{StyleBold}, "\x1B[1m"},
		{[]GraphicAttribute{StyleBold, StyleItalic, StyleUnderline}, "\x1B[1;3;4m"},
		{[]GraphicAttribute{TrueColor{R: 1, G: 2, B: 3}}, "\x1B[38;2;1;2;3m"},
		{[]GraphicAttribute{TrueColor{R: 255, G: 0, B: 127, Background: true}}, "\x1B[48;2;255;0;127m"},
		{[]GraphicAttribute{StyleBold, TrueColor{R: 1, G: 2, B: 3}}, "\x1B[1;38;2;1;2;3m"},
		{nil, "\x1B[m"},
	}
	for _, tt := range tests {
		if got := SetGraphicAttributes(tt.attrs...); got != tt.want {
			t.Errorf("SetGraphicAttributes(%v) = %q, want %q", tt.attrs, got, tt.want)
		}
	}
}
