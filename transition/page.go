// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package transition

// Section is a named vertical range of a page,
// in document coordinates.
type Section struct {
	Name   string  `yaml:"name"`
	Offset float64 `yaml:"offset"`
	Height float64 `yaml:"height"`
}

// DefaultSections returns the layout of the portfolio
// page, in pixels.
func DefaultSections() []Section {
	return []Section{
		{Name: "home", Offset: 0, Height: 800},
		{Name: "about", Offset: 800, Height: 900},
		{Name: "publications", Offset: 1700, Height: 1000},
		{Name: "contact", Offset: 2700, Height: 500},
	}
}

// VirtualPage is an in-memory Page.
type VirtualPage struct {
	viewport float64
	scroll   float64
	sections []Section
}

// NewVirtualPage creates a page with the given viewport
// height and sections.
func NewVirtualPage(viewportH float64, sections ...Section) *VirtualPage {
	p := &VirtualPage{sections: append([]Section(nil), sections...)}
	p.Resize(viewportH)
	return p
}

// ViewportHeight implements Page.
func (p *VirtualPage) ViewportHeight() float64 { return p.viewport }

// SectionBounds implements Page.
func (p *VirtualPage) SectionBounds(name string) (Rect, bool) {
	for _, s := range p.sections {
		if s.Name == name {
			top := s.Offset - p.scroll
			return Rect{Top: top, Bottom: top + s.Height}, true
		}
	}
	return Rect{}, false
}

// Sections returns the sections of the page. The slice
// must not be modified.
func (p *VirtualPage) Sections() []Section { return p.sections }

// Height returns the height of the whole document.
func (p *VirtualPage) Height() (h float64) {
	for _, s := range p.sections {
		h = max(h, s.Offset+s.Height)
	}
	return
}

// MaxScroll returns the largest valid scroll offset.
func (p *VirtualPage) MaxScroll() float64 { return max(0, p.Height()-p.viewport) }

// ScrollY returns the scroll offset.
func (p *VirtualPage) ScrollY() float64 { return p.scroll }

// ScrollTo sets the scroll offset, clamped to the
// document.
func (p *VirtualPage) ScrollTo(y float64) {
	p.scroll = min(p.MaxScroll(), max(0, y))
}

// ScrollBy scrolls the page by dy.
func (p *VirtualPage) ScrollBy(dy float64) { p.ScrollTo(p.scroll + dy) }

// Resize sets the viewport height. Negative heights
// are treated as 0.
func (p *VirtualPage) Resize(viewportH float64) {
	p.viewport = max(0, viewportH)
	p.ScrollTo(p.scroll)
}

// ScrollToSection scrolls so that the named section is
// at the top of the viewport, less offset. It returns
// false if there is no such section.
func (p *VirtualPage) ScrollToSection(name string, offset float64) bool {
	for _, s := range p.sections {
		if s.Name == name {
			p.ScrollTo(s.Offset - offset)
			return true
		}
	}
	return false
}
