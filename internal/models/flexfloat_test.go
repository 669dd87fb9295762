package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexible(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"currency br", "R$ 1.234,56", 1234.56},
		{"plain decimal", "1500.75", 1500.75},
		{"pg numeric rendering", "1500.00", 1500},
		{"pg numeric cents", "42.50", 42.5},
		{"comma decimal", "1500,75", 1500.75},
		{"thousands only", "1.500", 1500},
		{"dot grouped", "1.234", 1234},
		{"dot grouped millions", "1.234.567", 1234567},
		{"comma wins over dots", "1.234.567,89", 1234567.89},
		{"empty", "", 0},
		{"garbage", "abc", 0},
		{"whitespace", "  R$  2.000,00 ", 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseFlexible(tt.in), 1e-9)
		})
	}
}

func TestFlexFloat_UnmarshalJSON(t *testing.T) {
	var doc struct {
		V FlexFloat `json:"v"`
	}

	assert.NoError(t, json.Unmarshal([]byte(`{"v": 42.5}`), &doc))
	assert.InDelta(t, 42.5, doc.V.Float64(), 1e-9)

	assert.NoError(t, json.Unmarshal([]byte(`{"v": "R$ 1.234,56"}`), &doc))
	assert.InDelta(t, 1234.56, doc.V.Float64(), 1e-9)

	assert.NoError(t, json.Unmarshal([]byte(`{"v": null}`), &doc))
	assert.Equal(t, 0.0, doc.V.Float64())

	doc.V = 7
	assert.NoError(t, json.Unmarshal([]byte(`{"v": ""}`), &doc))
	assert.Equal(t, 0.0, doc.V.Float64())
}

func TestFlexFloat_Scan(t *testing.T) {
	var f FlexFloat

	assert.NoError(t, f.Scan(float64(12.5)))
	assert.InDelta(t, 12.5, f.Float64(), 1e-9)

	assert.NoError(t, f.Scan(int64(3)))
	assert.InDelta(t, 3, f.Float64(), 1e-9)

	assert.NoError(t, f.Scan([]byte("1.234,56")))
	assert.InDelta(t, 1234.56, f.Float64(), 1e-9)

	// numeric(15,2) columns come back as canonical dot-decimal text; the dot
	// must never be read as a thousands separator here
	assert.NoError(t, f.Scan([]byte("1500.00")))
	assert.InDelta(t, 1500, f.Float64(), 1e-9)

	assert.NoError(t, f.Scan([]byte("42.50")))
	assert.InDelta(t, 42.5, f.Float64(), 1e-9)

	assert.NoError(t, f.Scan(nil))
	assert.Equal(t, 0.0, f.Float64())
}

func TestFlexFloat_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(FlexFloat(99.9))
	assert.NoError(t, err)
	assert.Equal(t, "99.9", string(b))
}
