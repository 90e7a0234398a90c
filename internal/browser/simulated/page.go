// internal/browser/simulated/page.go
//
// Package simulated provides an in-memory page that behaves like a browser
// tab as far as the humanoid is concerned: a fixed viewport over a taller
// document, elements laid out in document coordinates, and wheel events that
// move the scroll offset. It never sleeps; requested pauses are recorded.
package simulated

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/xkilldash9x/shymouse/api/schemas"
	"github.com/xkilldash9x/shymouse/internal/humanoid"
)

// Page is a scriptable stand-in for a browser tab.
type Page struct {
	mu sync.Mutex

	viewport   schemas.Viewport
	pageHeight float64
	scrollY    float64
	// wheelScale multiplies wheel deltas before they move the page, to model
	// pages that scroll less (or more) than the requested delta.
	wheelScale float64
	elements   map[string]schemas.ElementGeometry
	url        string

	events []schemas.MouseEventData
	sleeps []time.Duration
	closed bool
}

var _ humanoid.Executor = (*Page)(nil)

// Option configures a Page.
type Option func(*Page)

// WithViewport sets the visible window size.
func WithViewport(width, height float64) Option {
	return func(p *Page) { p.viewport = schemas.Viewport{Width: width, Height: height} }
}

// WithPageHeight sets the document height.
func WithPageHeight(height float64) Option {
	return func(p *Page) { p.pageHeight = height }
}

// WithWheelScale scales every wheel delta before applying it.
func WithWheelScale(scale float64) Option {
	return func(p *Page) { p.wheelScale = scale }
}

// NewPage returns a 1280x800 viewport over a 5000px document unless
// overridden.
func NewPage(opts ...Option) *Page {
	p := &Page{
		viewport:   schemas.Viewport{Width: 1280, Height: 800},
		pageHeight: 5000,
		wheelScale: 1,
		elements:   make(map[string]schemas.ElementGeometry),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddElement places an element at document coordinates.
func (p *Page) AddElement(selector string, docX, docY, width, height float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements[selector] = schemas.ElementGeometry{X: docX, Y: docY, Width: width, Height: height, TagName: "DIV"}
}

// SetScroll jumps the document to offset, clamped to the scrollable range.
func (p *Page) SetScroll(offset float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrollY = p.clampScroll(offset)
}

// clampScroll assumes the caller holds the lock.
func (p *Page) clampScroll(offset float64) float64 {
	maxScroll := math.Max(0, p.pageHeight-p.viewport.Height)
	return math.Max(0, math.Min(offset, maxScroll))
}

func (p *Page) checkOpen(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if p.closed {
		return fmt.Errorf("simulated: page is closed")
	}
	return nil
}

// Sleep records d without waiting.
func (p *Page) Sleep(ctx context.Context, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkOpen(ctx); err != nil {
		return err
	}
	p.sleeps = append(p.sleeps, d)
	return nil
}

// DispatchMouseEvent records the event. Wheel events scroll the document.
func (p *Page) DispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkOpen(ctx); err != nil {
		return err
	}
	p.events = append(p.events, data)
	if data.Type == schemas.MouseWheel {
		p.scrollY = p.clampScroll(p.scrollY + data.DeltaY*p.wheelScale)
	}
	return nil
}

// GetElementGeometry returns the viewport-relative box, or nil for an unknown
// selector.
func (p *Page) GetElementGeometry(ctx context.Context, selector string) (*schemas.ElementGeometry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkOpen(ctx); err != nil {
		return nil, err
	}
	el, ok := p.elements[selector]
	if !ok {
		return nil, nil
	}
	el.Y -= p.scrollY
	return &el, nil
}

func (p *Page) GetScrollOffset(ctx context.Context) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkOpen(ctx); err != nil {
		return 0, err
	}
	return p.scrollY, nil
}

func (p *Page) GetViewport(ctx context.Context) (schemas.Viewport, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkOpen(ctx); err != nil {
		return schemas.Viewport{}, err
	}
	return p.viewport, nil
}

// Navigate records url. The layout is left untouched and the scroll resets.
func (p *Page) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkOpen(ctx); err != nil {
		return err
	}
	p.url = url
	p.scrollY = 0
	return nil
}

// Close marks the page closed; later calls fail.
func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// URL returns the last navigated address.
func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

// Events returns a copy of every dispatched event.
func (p *Page) Events() []schemas.MouseEventData {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]schemas.MouseEventData, len(p.events))
	copy(out, p.events)
	return out
}

// EventsOfType filters Events by type.
func (p *Page) EventsOfType(kind schemas.MouseEventType) []schemas.MouseEventData {
	var out []schemas.MouseEventData
	for _, e := range p.Events() {
		if e.Type == kind {
			out = append(out, e)
		}
	}
	return out
}

// Sleeps returns a copy of every requested pause.
func (p *Page) Sleeps() []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]time.Duration, len(p.sleeps))
	copy(out, p.sleeps)
	return out
}

// Elapsed is the sum of all requested pauses.
func (p *Page) Elapsed() time.Duration {
	var total time.Duration
	for _, d := range p.Sleeps() {
		total += d
	}
	return total
}

// ScrollOffset returns the current document offset.
func (p *Page) ScrollOffset() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrollY
}
