package session

import "testing"

func TestStaleResultDiscarded(t *testing.T) {
	p := NewAssistPipeline()

	// Dispatch at 120, then at 240. The 120 response resolves last.
	p.BeginDispatch(120)
	p.BeginDispatch(240)

	if !p.Apply(240, nil, []Suggestion{{ID: "s-240", Title: "Newer"}}) {
		t.Fatal("fresh result should apply")
	}
	if p.Apply(120, nil, []Suggestion{{ID: "s-120", Title: "Older"}}) {
		t.Error("stale result (mark 120 < 240) must be discarded")
	}

	sugs := p.Suggestions()
	if len(sugs) != 1 || sugs[0].ID != "s-240" {
		t.Errorf("suggestions = %+v, want only s-240", sugs)
	}
}

func TestHaltBlocksDispatchAndResults(t *testing.T) {
	p := NewAssistPipeline()
	p.BeginDispatch(150)
	p.Halt()

	if p.BeginDispatch(300) {
		t.Error("no dispatch after terminal status")
	}
	if p.Apply(150, nil, []Suggestion{{ID: "late"}}) {
		t.Error("in-flight result arriving after halt must be discarded")
	}
}

func TestUsedSuggestionNeverReappears(t *testing.T) {
	p := NewAssistPipeline()

	p.BeginDispatch(120)
	p.Apply(120, nil, []Suggestion{{ID: "a"}, {ID: "b"}})

	if !p.Use("a") {
		t.Fatal("use should remove an active suggestion")
	}

	// A later run regenerating an overlapping id must not reinstate it.
	p.BeginDispatch(260)
	p.Apply(260, nil, []Suggestion{{ID: "a"}, {ID: "c"}})

	for _, s := range p.Suggestions() {
		if s.ID == "a" {
			t.Error("used suggestion reappeared after regeneration")
		}
	}
}

func TestDismissIsOneWay(t *testing.T) {
	p := NewAssistPipeline()
	p.BeginDispatch(120)
	p.Apply(120, nil, []Suggestion{{ID: "x"}})

	if !p.Dismiss("x") {
		t.Fatal("dismiss should remove an active suggestion")
	}
	if p.Dismiss("x") {
		t.Error("dismissing twice should report not-active")
	}
	if p.AddCoaching(Suggestion{ID: "x", Title: "tip"}) {
		t.Error("coaching tip with a dismissed id must be dropped")
	}
}

func TestCoachingSurvivesPipelineRefresh(t *testing.T) {
	p := NewAssistPipeline()

	p.AddCoaching(Suggestion{ID: "tip-1", Title: "Slow down"})
	p.BeginDispatch(130)
	p.Apply(130, &Playbook{ID: "pb-1", Name: "Claims intake"}, []Suggestion{{ID: "s-1"}})

	var haveTip, haveSug bool
	for _, s := range p.Suggestions() {
		switch s.ID {
		case "tip-1":
			haveTip = true
		case "s-1":
			haveSug = true
		}
	}
	if !haveTip || !haveSug {
		t.Errorf("suggestions = %+v, want coaching tip and pipeline item", p.Suggestions())
	}
	if p.Playbook() == nil || p.Playbook().ID != "pb-1" {
		t.Errorf("playbook = %+v, want pb-1", p.Playbook())
	}
}

func TestDuplicateCoachingIgnored(t *testing.T) {
	p := NewAssistPipeline()
	if !p.AddCoaching(Suggestion{ID: "tip"}) {
		t.Fatal("first coaching tip should be added")
	}
	if p.AddCoaching(Suggestion{ID: "tip"}) {
		t.Error("duplicate coaching id should be ignored")
	}
}
