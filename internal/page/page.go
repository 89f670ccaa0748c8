// Package page keeps the state of the single studio page: the prompt input,
// the trigger control and the loading, result and error regions. Surfaces
// render from snapshots of it.
package page

import (
	"sync"

	"asset-studio/internal/studio"
)

type Snapshot struct {
	Prompt         string         `json:"prompt"`
	TriggerEnabled bool           `json:"triggerEnabled"`
	LoadingVisible bool           `json:"loadingVisible"`
	ResultVisible  bool           `json:"resultVisible"`
	ErrorVisible   bool           `json:"errorVisible"`
	ImageSource    string         `json:"imageSource,omitempty"`
	ErrorMessage   string         `json:"errorMessage,omitempty"`
	State          studio.UIState `json:"state"`
}

type Page struct {
	mu             sync.RWMutex
	prompt         string
	triggerEnabled bool
	loadingVisible bool
	resultVisible  bool
	errorVisible   bool
	imageSource    string
	errorMessage   string
}

// New returns a page in the idle state: trigger enabled, every region hidden.
func New() *Page {
	return &Page{triggerEnabled: true}
}

func (p *Page) SetPrompt(prompt string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompt = prompt
}

func (p *Page) TriggerEnabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.triggerEnabled
}

func (p *Page) State() studio.UIState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stateLocked()
}

func (p *Page) stateLocked() studio.UIState {
	switch {
	case p.loadingVisible:
		return studio.Loading
	case p.resultVisible:
		return studio.Success
	case p.errorVisible:
		return studio.Error
	}
	return studio.Idle
}

func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{
		Prompt:         p.prompt,
		TriggerEnabled: p.triggerEnabled,
		LoadingVisible: p.loadingVisible,
		ResultVisible:  p.resultVisible,
		ErrorVisible:   p.errorVisible,
		ImageSource:    p.imageSource,
		ErrorMessage:   p.errorMessage,
		State:          p.stateLocked(),
	}
}

// Handles exposes the page regions to the controller.
func (p *Page) Handles() studio.Handles {
	return studio.Handles{
		Trigger: trigger{p},
		Input:   input{p},
		Loading: loading{p},
		Result:  result{p},
		Error:   errorRegion{p},
	}
}

func (p *Page) update(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn()
}

type trigger struct{ p *Page }

func (t trigger) SetEnabled(enabled bool) { t.p.update(func() { t.p.triggerEnabled = enabled }) }

type input struct{ p *Page }

func (i input) Value() string {
	i.p.mu.RLock()
	defer i.p.mu.RUnlock()
	return i.p.prompt
}

type loading struct{ p *Page }

func (l loading) Show() { l.p.update(func() { l.p.loadingVisible = true }) }
func (l loading) Hide() { l.p.update(func() { l.p.loadingVisible = false }) }

type result struct{ p *Page }

func (r result) Show()                { r.p.update(func() { r.p.resultVisible = true }) }
func (r result) Hide()                { r.p.update(func() { r.p.resultVisible = false }) }
func (r result) SetSource(src string) { r.p.update(func() { r.p.imageSource = src }) }

type errorRegion struct{ p *Page }

func (e errorRegion) Show()                 { e.p.update(func() { e.p.errorVisible = true }) }
func (e errorRegion) Hide()                 { e.p.update(func() { e.p.errorVisible = false }) }
func (e errorRegion) SetMessage(msg string) { e.p.update(func() { e.p.errorMessage = msg }) }
