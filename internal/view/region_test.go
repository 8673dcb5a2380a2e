package view

import (
	"errors"
	"testing"
)

func TestMemRegion_ReplaceDiscardsListeners(t *testing.T) {
	r := NewRegion("main")
	calls := 0
	r.Replace("<p>a</p>", Listener{Action: "click", Handle: func(Event) error { calls++; return nil }})

	if err := r.Dispatch(Event{Action: "click"}); err != nil {
		t.Fatal(err)
	}
	r.Replace("<p>b</p>")
	if err := r.Dispatch(Event{Action: "click"}); !errors.Is(err, ErrNoListener) {
		t.Errorf("old listener survived a replace: err = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if r.Markup() != "<p>b</p>" {
		t.Errorf("markup = %q", r.Markup())
	}
}

func TestMemRegion_ReplaceIf(t *testing.T) {
	r := NewRegion("main")
	tok := r.Replace("first")

	next, err := r.ReplaceIf(tok, "second")
	if err != nil {
		t.Fatalf("ReplaceIf with current token: %v", err)
	}
	if next == tok || r.Token() != next {
		t.Errorf("token did not advance: %d -> %d", tok, next)
	}

	if _, err := r.ReplaceIf(tok, "stale"); !errors.Is(err, ErrStale) {
		t.Errorf("err = %v, want ErrStale", err)
	}
	if r.Markup() != "second" {
		t.Errorf("stale write landed: %q", r.Markup())
	}
}

func TestMemRegion_DispatchMayRerender(t *testing.T) {
	r := NewRegion("main")
	var handle func(Event) error
	handle = func(ev Event) error {
		r.Replace("again:"+ev.Value, Listener{Action: "go", Handle: handle})
		return nil
	}
	r.Replace("start", Listener{Action: "go", Handle: handle})

	if err := r.Dispatch(Event{Action: "go", Value: "1"}); err != nil {
		t.Fatal(err)
	}
	if r.Markup() != "again:1" {
		t.Errorf("markup = %q", r.Markup())
	}
	if got := r.Actions(); len(got) != 1 || got[0] != "go" {
		t.Errorf("actions = %v", got)
	}
}

func TestOwned_UpdateAfterTakeover(t *testing.T) {
	r := NewRegion("main")
	o := &owned{region: r}
	o.claim("mine", nil)
	if err := o.update("mine v2", nil); err != nil {
		t.Fatalf("update while owning: %v", err)
	}

	r.Replace("someone else")
	if err := o.update("mine v3", nil); !errors.Is(err, ErrStale) {
		t.Errorf("err = %v, want ErrStale", err)
	}
	if r.Markup() != "someone else" {
		t.Errorf("markup = %q", r.Markup())
	}
}
