package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoLevelProduct() Product {
	return Product{
		PID:         "p1",
		Description: "population by state and year",
		Levels: []Level{
			{Index: 0, CID: "geo", Value: "SONORA", Kind: "SPATIAL"},
			{Index: 1, CID: "year", Value: "2020", Kind: "TEMPORAL"},
		},
		ProductType: "dataview",
		LevelPath:   "geo.year",
		Profile:     "SONORA.2020",
		ProductName: "Population",
		Tags:        []string{"demo", "public"},
		URL:         "/products/p1",
	}
}

func TestNewProductValid(t *testing.T) {
	p, err := NewProduct(twoLevelProduct())
	require.NoError(t, err)
	assert.Equal(t, "geo.year", p.LevelPath)
	assert.Equal(t, "SONORA.2020", p.Profile)
}

func TestNewProductDerivesProjections(t *testing.T) {
	raw := twoLevelProduct()
	raw.LevelPath = ""
	raw.Profile = ""

	p, err := NewProduct(raw)
	require.NoError(t, err)
	assert.Equal(t, "geo.year", p.LevelPath)
	assert.Equal(t, "SONORA.2020", p.Profile)
}

func TestNewProductProjectionMismatch(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Product)
		wantField string
	}{
		{
			name:      "segment count mismatch",
			mutate:    func(p *Product) { p.LevelPath = "geo" },
			wantField: "level_path",
		},
		{
			name:      "cid mismatch",
			mutate:    func(p *Product) { p.LevelPath = "geo.month" },
			wantField: "level_path",
		},
		{
			name:      "value mismatch",
			mutate:    func(p *Product) { p.Profile = "SONORA.2021" },
			wantField: "profile",
		},
		{
			name:      "profile missing entirely",
			mutate:    func(p *Product) { p.Profile = "" },
			wantField: "profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := twoLevelProduct()
			tt.mutate(&raw)

			_, err := NewProduct(raw)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestNewProductNoLevels(t *testing.T) {
	p, err := NewProduct(Product{PID: "p2", ProductName: "empty"})
	require.NoError(t, err)
	assert.Empty(t, p.LevelPath)
	assert.Empty(t, p.Profile)
}

func TestNewProductDeduplicatesTags(t *testing.T) {
	raw := twoLevelProduct()
	raw.Tags = []string{"a", "b", "a"}

	p, err := NewProduct(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.Tags)

	p.AddTag("b")
	p.AddTag("c")
	assert.Equal(t, []string{"a", "b", "c"}, p.Tags)
}

func TestProductSetLevels(t *testing.T) {
	p, err := NewProduct(twoLevelProduct())
	require.NoError(t, err)

	p.SetLevels([]Level{{Index: 0, CID: "sex", Value: "FEMALE", Kind: "INTEREST"}})
	assert.Equal(t, "sex", p.LevelPath)
	assert.Equal(t, "FEMALE", p.Profile)
}

func TestProductJSONRoundTrip(t *testing.T) {
	original, err := NewProduct(twoLevelProduct())
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Product
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *original, decoded)
	require.Len(t, decoded.Levels, 2)
	assert.Equal(t, "geo", decoded.Levels[0].CID)
	assert.Equal(t, "year", decoded.Levels[1].CID)
}

func TestProductUnmarshalDerivesProjections(t *testing.T) {
	data := []byte(`{
		"pid": "p1",
		"levels": [
			{"index": 0, "cid": "geo", "value": "SONORA", "kind": "SPATIAL"},
			{"index": 1, "cid": "year", "value": "2020", "kind": "TEMPORAL"}
		],
		"level_path": "",
		"profile": ""
	}`)

	var p Product
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, "geo.year", p.LevelPath)
	assert.Equal(t, "SONORA.2020", p.Profile)
}

func TestProductUnmarshalRejectsInconsistentProjection(t *testing.T) {
	data := []byte(`{
		"pid": "p1",
		"levels": [{"index": 0, "cid": "geo", "value": "SONORA", "kind": "SPATIAL"}],
		"level_path": "geo.year",
		"profile": "SONORA"
	}`)

	var p Product
	err := json.Unmarshal(data, &p)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "level_path", verr.Field)
}
