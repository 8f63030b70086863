package session

// Playbook is a pre-authored conversational script matched to call content.
type Playbook struct {
	ID      string
	Name    string
	Content string
}

// Suggestion is one AI coaching item shown to the agent. Source
// distinguishes pipeline-generated suggestions from push-delivered
// coaching tips.
type Suggestion struct {
	ID     string
	Title  string
	Body   string
	Source string // "pipeline" or "coaching"
}

// AssistPipeline tracks the two-stage suggestion flow: which length-mark was
// dispatched last, which results are still fresh, and which suggestions the
// agent has already used or dismissed. Used/dismissed ids are tombstoned so a
// later run regenerating an overlapping id never resurrects it.
type AssistPipeline struct {
	lastMark    int
	playbook    *Playbook
	suggestions []Suggestion
	removed     map[string]bool
	halted      bool
}

// NewAssistPipeline returns an empty pipeline.
func NewAssistPipeline() *AssistPipeline {
	return &AssistPipeline{removed: make(map[string]bool)}
}

// BeginDispatch records that a request with the given length-mark is going
// out. It returns false when the session is terminal and nothing should be
// dispatched. Marks only grow, so recording before the network call makes
// any still-in-flight older request stale.
func (p *AssistPipeline) BeginDispatch(mark int) bool {
	if p.halted {
		return false
	}
	if mark > p.lastMark {
		p.lastMark = mark
	}
	return true
}

// Apply installs a completed pipeline result. Results carrying a mark older
// than the newest dispatched mark lost the race to a newer cycle and are
// discarded, as is anything arriving after the session went terminal.
func (p *AssistPipeline) Apply(mark int, pb *Playbook, sugs []Suggestion) bool {
	if p.halted || mark < p.lastMark {
		return false
	}
	p.playbook = pb
	fresh := p.suggestions[:0]
	// Keep coaching tips; replace the previous pipeline batch.
	for _, s := range p.suggestions {
		if s.Source == "coaching" {
			fresh = append(fresh, s)
		}
	}
	for _, s := range sugs {
		if p.removed[s.ID] {
			continue
		}
		s.Source = "pipeline"
		fresh = append(fresh, s)
	}
	p.suggestions = fresh
	return true
}

// AddCoaching appends a push-delivered coaching tip, unless the agent has
// already acted on that id.
func (p *AssistPipeline) AddCoaching(s Suggestion) bool {
	if p.halted || p.removed[s.ID] {
		return false
	}
	for _, have := range p.suggestions {
		if have.ID == s.ID {
			return false
		}
	}
	s.Source = "coaching"
	p.suggestions = append(p.suggestions, s)
	return true
}

// Use removes a suggestion the agent applied. Returns false if the id was
// not in the active set.
func (p *AssistPipeline) Use(id string) bool { return p.remove(id) }

// Dismiss removes a suggestion the agent rejected.
func (p *AssistPipeline) Dismiss(id string) bool { return p.remove(id) }

func (p *AssistPipeline) remove(id string) bool {
	for i, s := range p.suggestions {
		if s.ID == id {
			p.suggestions = append(p.suggestions[:i], p.suggestions[i+1:]...)
			p.removed[id] = true
			return true
		}
	}
	return false
}

// Halt stops the pipeline permanently: no further dispatches, and in-flight
// results are discarded on arrival. Called when the session goes terminal.
func (p *AssistPipeline) Halt() { p.halted = true }

// Halted reports whether the pipeline has been stopped.
func (p *AssistPipeline) Halted() bool { return p.halted }

// Playbook returns the currently matched playbook, or nil.
func (p *AssistPipeline) Playbook() *Playbook { return p.playbook }

// Suggestions returns the active suggestion set in display order.
func (p *AssistPipeline) Suggestions() []Suggestion { return p.suggestions }

// LastMark returns the newest dispatched length-mark.
func (p *AssistPipeline) LastMark() int { return p.lastMark }
