// FILE: ./internal/humanoid/mocks_test.go
package humanoid

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/xkilldash9x/shymouse/api/schemas"
)

// mockExecutor implements the Executor interface on top of a tiny page model:
// a viewport, a vertical scroll offset, and elements placed in document
// coordinates. Wheel events move the scroll offset.
//
// Mock implementations MUST NOT acquire the Humanoid mutex; public Humanoid
// methods already hold it while calling into the executor.
type mockExecutor struct {
	t                *testing.T
	dispatchedEvents []schemas.MouseEventData
	sleepDurations   []time.Duration
	returnErr        error
	mu               sync.Mutex

	viewport   schemas.Viewport
	scrollY    float64
	pageHeight float64
	// elements maps selectors to document-space boxes.
	elements map[string]schemas.ElementGeometry

	// For advanced scenario control.
	cancelOnCall int
	failOnCall   int
	callCount    int
	cancelFunc   context.CancelFunc

	// If set, these replace the default behavior. The override can call the
	// corresponding Default* method if the default logic is still required.
	MockGetElementGeometry func(ctx context.Context, selector string) (*schemas.ElementGeometry, error)
	MockGetScrollOffset    func(ctx context.Context) (float64, error)
	MockSleep              func(ctx context.Context, d time.Duration) error
	MockDispatchMouseEvent func(ctx context.Context, data schemas.MouseEventData) error
}

// newMockExecutor creates a 1280x800 viewport over a 5000px tall page.
func newMockExecutor(t *testing.T) *mockExecutor {
	return &mockExecutor{
		t:                t,
		dispatchedEvents: make([]schemas.MouseEventData, 0),
		sleepDurations:   make([]time.Duration, 0),
		viewport:         schemas.Viewport{Width: 1280, Height: 800},
		pageHeight:       5000,
		elements:         make(map[string]schemas.ElementGeometry),
	}
}

// addElement places an element at document coordinates.
func (m *mockExecutor) addElement(selector string, docX, docY, width, height float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elements[selector] = schemas.ElementGeometry{X: docX, Y: docY, Width: width, Height: height, TagName: "DIV"}
}

func (m *mockExecutor) DispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error {
	if m.MockDispatchMouseEvent != nil {
		return m.MockDispatchMouseEvent(ctx, data)
	}
	return m.DefaultDispatchMouseEvent(ctx, data)
}

// DefaultDispatchMouseEvent records the event and applies wheel deltas to the
// scroll offset.
func (m *mockExecutor) DefaultDispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Always record the event first so cleanup actions are visible to tests.
	m.dispatchedEvents = append(m.dispatchedEvents, data)
	m.callCount++

	if m.returnErr != nil && (m.failOnCall == 0 || m.callCount >= m.failOnCall) {
		return m.returnErr
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if m.cancelOnCall > 0 && m.callCount == m.cancelOnCall && m.cancelFunc != nil {
		m.cancelFunc()
	}

	if data.Type == schemas.MouseWheel {
		maxScroll := math.Max(0, m.pageHeight-m.viewport.Height)
		m.scrollY = math.Max(0, math.Min(m.scrollY+data.DeltaY, maxScroll))
	}
	return nil
}

func (m *mockExecutor) Sleep(ctx context.Context, d time.Duration) error {
	if m.MockSleep != nil {
		return m.MockSleep(ctx, d)
	}
	return m.DefaultSleep(ctx, d)
}

// DefaultSleep records the duration without sleeping.
func (m *mockExecutor) DefaultSleep(ctx context.Context, d time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sleepDurations = append(m.sleepDurations, d)
	return nil
}

func (m *mockExecutor) GetElementGeometry(ctx context.Context, selector string) (*schemas.ElementGeometry, error) {
	if m.MockGetElementGeometry != nil {
		return m.MockGetElementGeometry(ctx, selector)
	}
	return m.DefaultGetElementGeometry(ctx, selector)
}

// DefaultGetElementGeometry returns the element box relative to the viewport,
// or nil when the selector is unknown.
func (m *mockExecutor) DefaultGetElementGeometry(ctx context.Context, selector string) (*schemas.ElementGeometry, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.returnErr != nil && m.failOnCall == 0 {
		return nil, m.returnErr
	}
	el, ok := m.elements[selector]
	if !ok {
		return nil, nil
	}
	el.Y -= m.scrollY
	return &el, nil
}

func (m *mockExecutor) GetScrollOffset(ctx context.Context) (float64, error) {
	if m.MockGetScrollOffset != nil {
		return m.MockGetScrollOffset(ctx)
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scrollY, nil
}

func (m *mockExecutor) GetViewport(ctx context.Context) (schemas.Viewport, error) {
	if ctx.Err() != nil {
		return schemas.Viewport{}, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewport, nil
}

// events returns a copy of the recorded events.
func (m *mockExecutor) events() []schemas.MouseEventData {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]schemas.MouseEventData, len(m.dispatchedEvents))
	copy(out, m.dispatchedEvents)
	return out
}

// eventsOfType filters the recorded events by type.
func (m *mockExecutor) eventsOfType(kind schemas.MouseEventType) []schemas.MouseEventData {
	var out []schemas.MouseEventData
	for _, e := range m.events() {
		if e.Type == kind {
			out = append(out, e)
		}
	}
	return out
}

// currentScroll returns the simulated scroll offset.
func (m *mockExecutor) currentScroll() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scrollY
}

// fixedRand is a deterministic Rand that returns the same values forever.
type fixedRand struct {
	uniform float64
	normal  float64
}

func (r fixedRand) Float64() float64     { return r.uniform }
func (r fixedRand) NormFloat64() float64 { return r.normal }
