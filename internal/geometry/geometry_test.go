package geometry

import (
	"testing"

	"github.com/mapboard-app/mapboard/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		typ     string
		payload string
		wantErr bool
	}{
		{"marker ok", models.DrawingMarker, `{"position":{"lat":42.19,"lng":24.33}}`, false},
		{"marker lat out of range", models.DrawingMarker, `{"position":{"lat":90.5,"lng":0}}`, true},
		{"marker unknown field", models.DrawingMarker, `{"position":{"lat":1,"lng":2},"color":"red"}`, true},
		{"circle ok", models.DrawingCircle, `{"center":{"lat":42.19,"lng":24.33},"radius":500}`, false},
		{"circle zero radius", models.DrawingCircle, `{"center":{"lat":0,"lng":0},"radius":0}`, true},
		{"polygon ok", models.DrawingPolygon, `{"paths":[{"lat":0,"lng":0},{"lat":1,"lng":0},{"lat":0,"lng":1}]}`, false},
		{"polygon too few points", models.DrawingPolygon, `{"paths":[{"lat":0,"lng":0},{"lat":1,"lng":0}]}`, true},
		{"polyline ok", models.DrawingPolyline, `{"path":[{"lat":0,"lng":0},{"lat":1,"lng":1}]}`, false},
		{"polyline single point", models.DrawingPolyline, `{"path":[{"lat":0,"lng":0}]}`, true},
		{"polyline point out of range", models.DrawingPolyline, `{"path":[{"lat":0,"lng":0},{"lat":0,"lng":181}]}`, true},
		{"rectangle ok", models.DrawingRectangle, `{"bounds":{"north":2,"south":1,"east":2,"west":1}}`, false},
		{"rectangle inverted", models.DrawingRectangle, `{"bounds":{"north":1,"south":2,"east":2,"west":1}}`, true},
		{"empty payload", models.DrawingMarker, ``, true},
		{"malformed json", models.DrawingMarker, `{"position":`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.typ, []byte(tc.payload))
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUnknownType(t *testing.T) {
	err := Validate("scribble", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownType)
}
