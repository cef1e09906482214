// Package geometry validates the type-dependent JSON payloads persisted with
// drawings. Each drawing type has one payload shape; Validate decodes and
// checks the payload for a given type before it reaches the database.
package geometry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mapboard-app/mapboard/internal/models"
)

var ErrUnknownType = errors.New("unknown drawing type")

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p LatLng) valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

type Marker struct {
	Position LatLng `json:"position"`
}

type Circle struct {
	Center LatLng  `json:"center"`
	Radius float64 `json:"radius"` // meters
}

type Polygon struct {
	Paths []LatLng `json:"paths"`
}

type Polyline struct {
	Path []LatLng `json:"path"`
}

type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

type Rectangle struct {
	Bounds Bounds `json:"bounds"`
}

// Validate decodes raw as the payload shape for drawingType and checks it.
func Validate(drawingType string, raw []byte) error {
	if len(raw) == 0 {
		return errors.New("geometry data is required")
	}

	dec := func(v interface{}) error {
		d := json.NewDecoder(bytes.NewReader(raw))
		d.DisallowUnknownFields()
		return d.Decode(v)
	}

	switch drawingType {
	case models.DrawingMarker:
		var m Marker
		if err := dec(&m); err != nil {
			return fmt.Errorf("invalid marker payload: %w", err)
		}
		if !m.Position.valid() {
			return errors.New("marker position out of range")
		}
	case models.DrawingCircle:
		var c Circle
		if err := dec(&c); err != nil {
			return fmt.Errorf("invalid circle payload: %w", err)
		}
		if !c.Center.valid() {
			return errors.New("circle center out of range")
		}
		if c.Radius <= 0 {
			return errors.New("circle radius must be positive")
		}
	case models.DrawingPolygon:
		var p Polygon
		if err := dec(&p); err != nil {
			return fmt.Errorf("invalid polygon payload: %w", err)
		}
		if len(p.Paths) < 3 {
			return errors.New("polygon requires at least 3 points")
		}
		for _, pt := range p.Paths {
			if !pt.valid() {
				return errors.New("polygon point out of range")
			}
		}
	case models.DrawingPolyline:
		var p Polyline
		if err := dec(&p); err != nil {
			return fmt.Errorf("invalid polyline payload: %w", err)
		}
		if len(p.Path) < 2 {
			return errors.New("polyline requires at least 2 points")
		}
		for _, pt := range p.Path {
			if !pt.valid() {
				return errors.New("polyline point out of range")
			}
		}
	case models.DrawingRectangle:
		var r Rectangle
		if err := dec(&r); err != nil {
			return fmt.Errorf("invalid rectangle payload: %w", err)
		}
		b := r.Bounds
		if b.North < b.South {
			return errors.New("rectangle bounds inverted: north below south")
		}
		if b.North > 90 || b.South < -90 || b.East > 180 || b.East < -180 || b.West > 180 || b.West < -180 {
			return errors.New("rectangle bounds out of range")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, drawingType)
	}
	return nil
}
