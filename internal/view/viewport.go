package view

import "sync"

// Viewport tracks the scroll position of the main region: the top of
// the page or an element id.
type Viewport struct {
	region Region

	mu     sync.Mutex
	anchor string
}

// NewViewport scrolls over region.
func NewViewport(region Region) *Viewport {
	return &Viewport{region: region}
}

func (v *Viewport) ScrollTop() {
	v.mu.Lock()
	v.anchor = ""
	v.mu.Unlock()
}

// ScrollTo moves to the element with id anchor if the region has one.
func (v *Viewport) ScrollTo(anchor string) bool {
	if !HasElement(v.region.Markup(), anchor) {
		return false
	}
	v.mu.Lock()
	v.anchor = anchor
	v.mu.Unlock()
	return true
}

// Position returns the anchor scrolled to, or "" at the top.
func (v *Viewport) Position() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.anchor
}
