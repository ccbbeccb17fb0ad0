// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package transition

// DefaultStickyAfter is the scroll offset past which
// the header becomes sticky.
const DefaultStickyAfter = 100

// Header tracks the state of the page header.
// It is sticky once the page scrolls past StickyAfter,
// and hidden while scrolling down past it.
type Header struct {
	StickyAfter float64
	last        float64
	sticky      bool
	hidden      bool
}

// NewHeader creates a header using DefaultStickyAfter.
func NewHeader() *Header { return &Header{StickyAfter: DefaultStickyAfter} }

// Update records a new scroll offset.
func (h *Header) Update(scrollY float64) (sticky, hidden bool) {
	h.sticky = scrollY > h.StickyAfter
	h.hidden = h.sticky && scrollY > h.last
	h.last = scrollY
	return h.sticky, h.hidden
}

// Sticky returns whether the header is sticky.
func (h *Header) Sticky() bool { return h.sticky }

// Hidden returns whether the header is hidden.
func (h *Header) Hidden() bool { return h.hidden }
