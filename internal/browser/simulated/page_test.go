// internal/browser/simulated/page_test.go
package simulated

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/shymouse/api/schemas"
)

func TestPage_WheelScrollsAndClamps(t *testing.T) {
	p := NewPage(WithPageHeight(2000))
	ctx := context.Background()

	require.NoError(t, p.DispatchMouseEvent(ctx, schemas.MouseEventData{Type: schemas.MouseWheel, DeltaY: 500}))
	assert.Equal(t, 500.0, p.ScrollOffset())

	require.NoError(t, p.DispatchMouseEvent(ctx, schemas.MouseEventData{Type: schemas.MouseWheel, DeltaY: 5000}))
	assert.Equal(t, 1200.0, p.ScrollOffset(), "clamped to page height minus viewport")

	require.NoError(t, p.DispatchMouseEvent(ctx, schemas.MouseEventData{Type: schemas.MouseWheel, DeltaY: -9000}))
	assert.Zero(t, p.ScrollOffset())

	require.NoError(t, p.DispatchMouseEvent(ctx, schemas.MouseEventData{Type: schemas.MouseMove, X: 1, Y: 1}))
	assert.Zero(t, p.ScrollOffset())
	assert.Len(t, p.Events(), 4)
	assert.Len(t, p.EventsOfType(schemas.MouseWheel), 3)
}

func TestPage_WheelScale(t *testing.T) {
	p := NewPage(WithWheelScale(0.5))
	require.NoError(t, p.DispatchMouseEvent(context.Background(), schemas.MouseEventData{Type: schemas.MouseWheel, DeltaY: 200}))
	assert.Equal(t, 100.0, p.ScrollOffset())
}

func TestPage_GeometryIsViewportRelative(t *testing.T) {
	p := NewPage()
	p.AddElement("#target", 100, 1500, 200, 50)
	p.SetScroll(1000)
	ctx := context.Background()

	geo, err := p.GetElementGeometry(ctx, "#target")
	require.NoError(t, err)
	require.NotNil(t, geo)
	assert.Equal(t, 500.0, geo.Y)
	assert.Equal(t, 100.0, geo.X)

	missing, err := p.GetElementGeometry(ctx, "#missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPage_SleepsAreRecorded(t *testing.T) {
	p := NewPage()
	ctx := context.Background()
	require.NoError(t, p.Sleep(ctx, 10*time.Millisecond))
	require.NoError(t, p.Sleep(ctx, 15*time.Millisecond))
	assert.Equal(t, 25*time.Millisecond, p.Elapsed())
}

func TestPage_NavigateAndClose(t *testing.T) {
	p := NewPage()
	ctx := context.Background()
	p.SetScroll(400)

	require.NoError(t, p.Navigate(ctx, "https://example.com"))
	assert.Equal(t, "https://example.com", p.URL())
	assert.Zero(t, p.ScrollOffset())

	require.NoError(t, p.Close())
	assert.Error(t, p.DispatchMouseEvent(ctx, schemas.MouseEventData{Type: schemas.MouseMove}))
	_, err := p.GetViewport(ctx)
	assert.Error(t, err)
}

func TestPage_RespectsContext(t *testing.T) {
	p := NewPage()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Sleep(ctx, time.Second), context.Canceled)
	_, err := p.GetScrollOffset(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
