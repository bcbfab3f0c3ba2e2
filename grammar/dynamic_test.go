package grammar

import "testing"

func TestSubstitute(t *testing.T) {
	caps := []string{"foo", "a.b"}
	tests := []struct {
		pattern string
		quote   bool
		want    string
	}{
		{"%1", false, "foo"},
		{"</%1>", false, "</foo>"},
		{"%1..%1", false, "foo..foo"},
		{"%2", false, "a.b"},
		{"%2", true, `a\.b`}, // captures match literally inside regexes
		{"%3", false, ""},    // beyond the capture count
		{"%%1", false, "%1"},
		{"100%", false, "100%"},
		{"%x", false, "%x"},
		{"plain", false, "plain"},
	}
	for _, tt := range tests {
		if got := substitute(tt.pattern, caps, tt.quote); got != tt.want {
			t.Errorf("substitute(%q, quote=%t) = %q, want %q", tt.pattern, tt.quote, got, tt.want)
		}
	}
}

func TestInstantiate(t *testing.T) {
	g := &Grammar{
		Name:    "dyn",
		Default: 0,
		Contexts: []Context{
			{Name: "Normal", Rules: []Rule{
				{Kind: RegExpr, Pattern: `(\w+)\.\.`, Switch: PushDynamic(1)},
			}},
			{Name: "Tail", Rules: []Rule{
				{Kind: StringDetect, Pattern: "%1", Dynamic: true, Switch: Pop(1)},
				{Kind: RegExpr, Pattern: `=%1=`, Dynamic: true},
				{Kind: DetectChar, Ch: 'k'}, // static rules come through untouched
			}},
		},
	}
	if err := g.Compile(); err != nil {
		t.Fatal(err)
	}
	inst := g.Instantiate(1, []string{"foo"})
	if inst == nil {
		t.Fatal("Instantiate returned nil")
	}
	if got := inst.Rules[0].Pattern; got != "foo" {
		t.Errorf("substituted StringDetect pattern = %q, want %q", got, "foo")
	}
	if re := inst.Rules[1].Regexp(); re == nil {
		t.Error("substituted RegExpr was not compiled")
	} else if !re.MatchString("=foo=") {
		t.Error("substituted RegExpr does not match its capture")
	}
	if inst.Rules[2].Ch != 'k' {
		t.Error("static rule was altered by instantiation")
	}
	// The template in the arena must be untouched.
	if got := g.Contexts[1].Rules[0].Pattern; got != "%1" {
		t.Errorf("template pattern mutated to %q", got)
	}
	if g.Instantiate(99, nil) != nil {
		t.Error("Instantiate of an out-of-range id returned a context")
	}
}
