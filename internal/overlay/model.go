// Package overlay defines the per-frame draw list handed to the compositor.
// Every derived element is a filled polygon, a label or an icon in view
// coordinates, emitted in paint order.
package overlay

import (
	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/banshee-data/velocity.hud/internal/gradient"
)

// Bundle is the canonical output of one frame.
type Bundle struct {
	SessionID string `json:"session_id"`
	Frame     uint64 `json:"frame"`

	Polygons []Polygon `json:"polygons"`
	Labels   []Label   `json:"labels"`
	Icons    []Icon    `json:"icons"`
}

// Paint is either a solid colour or a vertical gradient.
type Paint struct {
	Solid    *Color          `json:"solid,omitempty"`
	Gradient []gradient.Stop `json:"gradient,omitempty"`
}

// SolidPaint wraps c.
func SolidPaint(c Color) Paint {
	return Paint{Solid: &c}
}

// GradientPaint wraps stops.
func GradientPaint(stops []gradient.Stop) Paint {
	return Paint{Gradient: stops}
}

// Polygon is a filled shape.
type Polygon struct {
	Name   string       `json:"name"`
	Points []geom.Point `json:"points"`
	Paint  Paint        `json:"paint"`
}

// Label is a text draw.
type Label struct {
	Name     string     `json:"name"`
	Pos      geom.Point `json:"pos"`
	Text     string     `json:"text"`
	Color    Color      `json:"color"`
	FontSize int        `json:"font_size"`
}

// Icon is an image draw. Image is a handle resolved by the compositor.
type Icon struct {
	Name     string     `json:"name"`
	Pos      geom.Point `json:"pos"`
	Image    string     `json:"image"`
	Opacity  float64    `json:"opacity"`
	Rotation float64    `json:"rotation"`
	// Scale multiplies the artwork's natural size.
	Scale float64 `json:"scale"`
}

// AddPolygon appends a polygon. Polygons with fewer than three points are
// dropped since they fill nothing.
func (b *Bundle) AddPolygon(name string, pts []geom.Point, p Paint) {
	if len(pts) < 3 {
		return
	}
	b.Polygons = append(b.Polygons, Polygon{Name: name, Points: pts, Paint: p})
}

// AddLabel appends a label. Empty text is dropped.
func (b *Bundle) AddLabel(name string, pos geom.Point, text string, c Color, size int) {
	if text == "" {
		return
	}
	b.Labels = append(b.Labels, Label{Name: name, Pos: pos, Text: text, Color: c, FontSize: size})
}

// AddIcon appends an icon at its natural size. Fully transparent icons are
// dropped.
func (b *Bundle) AddIcon(name string, pos geom.Point, image string, opacity, rotation float64) {
	b.AddScaledIcon(name, pos, image, opacity, rotation, 1)
}

// AddScaledIcon is AddIcon with a size factor.
func (b *Bundle) AddScaledIcon(name string, pos geom.Point, image string, opacity, rotation, scale float64) {
	if opacity <= 0 || scale <= 0 {
		return
	}
	b.Icons = append(b.Icons, Icon{Name: name, Pos: pos, Image: image, Opacity: opacity, Rotation: rotation, Scale: scale})
}

// Label returns the first label with the given name.
func (b *Bundle) Label(name string) (Label, bool) {
	for _, l := range b.Labels {
		if l.Name == name {
			return l, true
		}
	}
	return Label{}, false
}

// Icon returns the first icon with the given name.
func (b *Bundle) Icon(name string) (Icon, bool) {
	for _, i := range b.Icons {
		if i.Name == name {
			return i, true
		}
	}
	return Icon{}, false
}

// Polygon returns the first polygon with the given name.
func (b *Bundle) Polygon(name string) (Polygon, bool) {
	for _, p := range b.Polygons {
		if p.Name == name {
			return p, true
		}
	}
	return Polygon{}, false
}
