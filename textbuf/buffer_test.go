package textbuf

import (
	"reflect"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{""}},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\nb", []string{"a\n", "b"}},
		{"a\nb\n", []string{"a\n", "b\n"}},
		{"\n\n", []string{"\n", "\n"}},
	}
	for _, tt := range tests {
		b := New(tt.in)
		if got := b.SliceLines(0, b.LineCount()); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("New(%q) lines = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSliceLinesClampsAtEnd(t *testing.T) {
	b := New("a\nb\n")
	if got := b.SliceLines(0, b.LineCount()+5); !reflect.DeepEqual(got, []string{"a\n", "b\n"}) {
		t.Errorf("SliceLines past the end = %q", got)
	}
	if got := b.SliceLines(7, 9); len(got) != 0 {
		t.Errorf("SliceLines beyond the buffer = %q, want empty", got)
	}
}

func TestReadFrom(t *testing.T) {
	b := New("old\n")
	if _, err := b.ReadFrom(strings.NewReader("x\ny\n")); err != nil {
		t.Fatal(err)
	}
	if got := b.SliceLines(0, b.LineCount()); !reflect.DeepEqual(got, []string{"x\n", "y\n"}) {
		t.Errorf("lines after ReadFrom = %q", got)
	}
	if b.State(0) != -1 || b.State(1) != -1 {
		t.Error("ReadFrom did not reset the state slots")
	}
}

func TestEditsInvalidateStates(t *testing.T) {
	b := New("a\nb\nc\n")
	for i := 0; i < b.LineCount(); i++ {
		b.SetState(i, i+10)
	}

	if got := b.SetLine(1, "B\n"); got != 1 {
		t.Errorf("SetLine returned %d, want 1", got)
	}
	if b.State(0) != 10 {
		t.Error("SetLine cleared the state of an earlier line")
	}
	if b.State(1) != -1 || b.State(2) != -1 {
		t.Error("SetLine kept stale states from the edit down")
	}

	b.SetState(1, 20)
	b.SetState(2, 21)
	b.InsertLine(1, "new\n")
	want := []string{"a\n", "new\n", "B\n", "c\n"}
	if got := b.SliceLines(0, b.LineCount()); !reflect.DeepEqual(got, want) {
		t.Errorf("lines after InsertLine = %q, want %q", got, want)
	}
	if b.State(0) != 10 {
		t.Error("InsertLine cleared the state of an earlier line")
	}
	for i := 1; i < b.LineCount(); i++ {
		if b.State(i) != -1 {
			t.Errorf("line %d kept state %d after InsertLine", i, b.State(i))
		}
	}

	b.DeleteLine(1)
	want = []string{"a\n", "B\n", "c\n"}
	if got := b.SliceLines(0, b.LineCount()); !reflect.DeepEqual(got, want) {
		t.Errorf("lines after DeleteLine = %q, want %q", got, want)
	}
	if b.State(1) != -1 {
		t.Error("DeleteLine kept a stale state")
	}
}

func TestNextCharBoundary(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"ab", 1},
		{"é", 2},              // precomposed
		{"éx", 3},       // combining acute counts with its base
		{"日本", 3},   // plain CJK rune
		{"à́b", 5}, // stacked combining marks
	}
	for _, tt := range tests {
		if got := NextCharBoundary(tt.in); got != tt.want {
			t.Errorf("NextCharBoundary(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
