// browser/dom/scripts.go
//
// Package dom holds the page-side scripts the drivers evaluate to read layout,
// and the decoding of their results. Every driver shares the same scripts so
// the geometry semantics do not depend on the automation backend.
package dom

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/xkilldash9x/shymouse/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GeometryFunc returns the viewport-relative bounding box of the first element
// matching sel, or null when nothing matches or the element is not rendered.
const GeometryFunc = `(sel) => {
	const node = document.querySelector(sel);
	if (!node) return null;
	const rect = node.getBoundingClientRect();
	const style = window.getComputedStyle(node);
	if (rect.width <= 0 || rect.height <= 0 || style.display === 'none' || style.visibility === 'hidden') {
		return null;
	}
	return {x: rect.left, y: rect.top, width: rect.width, height: rect.height, tagName: node.tagName || ''};
}`

// ScrollOffsetFunc returns the vertical document scroll offset.
const ScrollOffsetFunc = `() => window.scrollY || window.pageYOffset || document.documentElement.scrollTop || 0`

// ViewportFunc returns the size of the visible window.
const ViewportFunc = `() => ({width: window.innerWidth, height: window.innerHeight})`

// Invoke turns a function expression and its arguments into a self-calling
// expression for backends that only evaluate plain expressions.
func Invoke(fn string, args ...interface{}) (string, error) {
	encoded := ""
	for i, arg := range args {
		b, err := json.Marshal(arg)
		if err != nil {
			return "", fmt.Errorf("dom: cannot encode argument %d: %w", i, err)
		}
		if i > 0 {
			encoded += ", "
		}
		encoded += string(b)
	}
	return fmt.Sprintf("(%s)(%s)", fn, encoded), nil
}

// DecodeGeometry parses a GeometryFunc result. A JSON null yields (nil, nil).
func DecodeGeometry(raw []byte) (*schemas.ElementGeometry, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var geo schemas.ElementGeometry
	if err := json.Unmarshal(raw, &geo); err != nil {
		return nil, fmt.Errorf("dom: invalid geometry payload %s: %w", string(raw), err)
	}
	if geo.Width <= 0 || geo.Height <= 0 {
		return nil, nil
	}
	return &geo, nil
}

// DecodeGeometryValue is DecodeGeometry for backends that hand back already
// decoded values (maps of numbers) instead of raw JSON.
func DecodeGeometryValue(v interface{}) (*schemas.ElementGeometry, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("dom: cannot re-encode geometry: %w", err)
	}
	return DecodeGeometry(raw)
}

// DecodeViewport parses a ViewportFunc result.
func DecodeViewport(v interface{}) (schemas.Viewport, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return schemas.Viewport{}, fmt.Errorf("dom: cannot re-encode viewport: %w", err)
	}
	var vp schemas.Viewport
	if err := json.Unmarshal(raw, &vp); err != nil {
		return schemas.Viewport{}, fmt.Errorf("dom: invalid viewport payload %s: %w", string(raw), err)
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return schemas.Viewport{}, fmt.Errorf("dom: degenerate viewport %vx%v", vp.Width, vp.Height)
	}
	return vp, nil
}

// ToFloat converts a decoded numeric result into a float64.
func ToFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("dom: expected a number, got %T", v)
	}
}
