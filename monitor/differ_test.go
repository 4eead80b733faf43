package monitor

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"\n\t \r\n", ""},
		{"Hello", "Hello"},
		{"  Hello  ", "Hello"},
		{"Hello   World", "Hello World"},
		{"Hello\nWorld", "Hello World"},
		{"Hello \n\n  World\t!", "Hello World !"},
		{"line1\nline2\nline3", "line1 line2 line3"},
	}

	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClassifyDecisionTable(t *testing.T) {
	cases := []struct {
		name     string
		prev     string
		cur      string
		want     Event
		wantNone bool
	}{
		{name: "both empty", prev: "", cur: "", wantNone: true},
		{name: "first appearance", prev: "", cur: "Hello", want: NewText{Text: "Hello"}},
		{name: "unchanged", prev: "Hello", cur: "Hello", wantNone: true},
		{name: "cleared", prev: "Hello", cur: "", want: TextCleared{Text: "Hello"}},
	}

	for _, c := range cases {
		event, ok := Classify(c.prev, c.cur)
		if c.wantNone {
			if ok {
				t.Errorf("%s: Classify(%q, %q) = %v, want none", c.name, c.prev, c.cur, event)
			}
			continue
		}
		if !ok {
			t.Errorf("%s: Classify(%q, %q) returned none, want %v", c.name, c.prev, c.cur, c.want)
			continue
		}
		if !reflect.DeepEqual(event, c.want) {
			t.Errorf("%s: Classify(%q, %q) = %#v, want %#v", c.name, c.prev, c.cur, event, c.want)
		}
	}
}

func TestClassifyChanged(t *testing.T) {
	event, ok := Classify("Hello", "Hello World")
	if !ok {
		t.Fatal("Expected a TextChanged event")
	}
	changed, isChanged := event.(TextChanged)
	if !isChanged {
		t.Fatalf("Expected TextChanged, got %T", event)
	}
	if changed.Old != "Hello" || changed.New != "Hello World" {
		t.Errorf("Unexpected old/new: %q -> %q", changed.Old, changed.New)
	}
	if !reflect.DeepEqual(changed.Added, []string{"World"}) {
		t.Errorf("Added = %v, want [World]", changed.Added)
	}
	if len(changed.Removed) != 0 {
		t.Errorf("Removed = %v, want empty", changed.Removed)
	}
}

func TestClassifyPairwiseSequence(t *testing.T) {
	// Scenario: "", "Hello", "Hello", "Hello World", "" produces exactly
	// New(Hello), Changed(Hello, Hello World), Cleared(Hello World).
	texts := []string{"", "Hello", "Hello", "Hello World", ""}

	var events []Event
	prev := ""
	for _, cur := range texts {
		if event, ok := Classify(prev, cur); ok {
			events = append(events, event)
		}
		prev = cur
	}

	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d: %v", len(events), events)
	}
	if e, ok := events[0].(NewText); !ok || e.Text != "Hello" {
		t.Errorf("events[0] = %#v, want NewText{Hello}", events[0])
	}
	if e, ok := events[1].(TextChanged); !ok || e.Old != "Hello" || e.New != "Hello World" {
		t.Errorf("events[1] = %#v, want TextChanged{Hello, Hello World}", events[1])
	}
	if e, ok := events[2].(TextCleared); !ok || e.Text != "Hello World" {
		t.Errorf("events[2] = %#v, want TextCleared{Hello World}", events[2])
	}
}

func TestClassifyIdempotence(t *testing.T) {
	// Feeding the same text twice yields one event for the transition and
	// nothing for the repeat.
	event, ok := Classify("", "status: ok")
	if !ok {
		t.Fatalf("Expected event for first transition, got none (%v)", event)
	}
	if _, ok := Classify("status: ok", "status: ok"); ok {
		t.Error("Expected no event for repeated text")
	}
}

func TestDiffWords(t *testing.T) {
	added, removed := diffWords("error code 404", "error code 500 retry")
	if !reflect.DeepEqual(added, []string{"500", "retry"}) {
		t.Errorf("added = %v, want [500 retry]", added)
	}
	if !reflect.DeepEqual(removed, []string{"404"}) {
		t.Errorf("removed = %v, want [404]", removed)
	}

	// Duplicates are reported once.
	added, removed = diffWords("a a b", "b c c")
	if !reflect.DeepEqual(added, []string{"c"}) {
		t.Errorf("added = %v, want [c]", added)
	}
	if !reflect.DeepEqual(removed, []string{"a"}) {
		t.Errorf("removed = %v, want [a]", removed)
	}
}
