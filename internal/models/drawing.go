package models

import (
	"time"

	"gorm.io/datatypes"
)

// Drawing types supported by the map widget.
const (
	DrawingMarker    = "marker"
	DrawingCircle    = "circle"
	DrawingPolygon   = "polygon"
	DrawingPolyline  = "polyline"
	DrawingRectangle = "rectangle"
)

// Place-type classifiers; each has a matching forum category.
const (
	PlaceBuilding        = "building"
	PlaceLandmarks       = "landmarks"
	PlaceParks           = "parks"
	PlaceInfrastructures = "infrastructures"
)

var DrawingTypes = []string{DrawingMarker, DrawingCircle, DrawingPolygon, DrawingPolyline, DrawingRectangle}

var PlaceTypes = []string{PlaceBuilding, PlaceLandmarks, PlaceParks, PlaceInfrastructures}

func IsValidDrawingType(t string) bool {
	for _, v := range DrawingTypes {
		if v == t {
			return true
		}
	}
	return false
}

func IsValidPlaceType(t string) bool {
	for _, v := range PlaceTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Drawing is a user-placed geometric annotation. Data holds the
// type-dependent geometry payload as JSON.
type Drawing struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Type        string         `gorm:"size:50;not null;index:idx_drawings_type;check:type IN ('marker','circle','polygon','polyline','rectangle')" json:"type"`
	Data        datatypes.JSON `gorm:"not null" json:"data"`
	Title       string         `gorm:"size:255;not null;default:'Untitled Drawing'" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	PlaceType   *string        `gorm:"size:50;check:place_type IN ('building','landmarks','parks','infrastructures')" json:"place_type"`
	UserID      *uint          `gorm:"index:idx_drawings_user_id" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time      `gorm:"index:idx_drawings_created_at,sort:desc" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
