package dto

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogCoercesMappings(t *testing.T) {
	catalog, err := NewCatalog("c1", "Test  catalog", []any{
		map[string]any{"id": "x", "display_name": "y  z"},
	}, "Temporal")
	require.NoError(t, err)

	assert.Equal(t, "Test catalog", catalog.DisplayName)
	require.Len(t, catalog.Items, 1)
	assert.Equal(t, "x", catalog.Items[0].ID)
	assert.Equal(t, "y z", catalog.Items[0].DisplayName)
}

func TestNewCatalogCoercesTypedItems(t *testing.T) {
	catalog, err := NewCatalog("c1", "Ages", []any{
		CatalogItem{ID: "a1", DisplayName: "0  to   5"},
		&CatalogItem{ID: "a2", DisplayName: "6 to 10"},
	}, "INTEREST")
	require.NoError(t, err)

	require.Len(t, catalog.Items, 2)
	assert.Equal(t, "0 to 5", catalog.Items[0].DisplayName)
	assert.Equal(t, "6 to 10", catalog.Items[1].DisplayName)
}

func TestNewCatalogRejectsBadItems(t *testing.T) {
	tests := []struct {
		name      string
		items     []any
		wantIndex int
	}{
		{
			name:      "unmatched key",
			items:     []any{map[string]any{"id": "x", "display_name": "y", "bogus": 1}},
			wantIndex: 0,
		},
		{
			name:      "missing id",
			items:     []any{map[string]any{"display_name": "y"}},
			wantIndex: 0,
		},
		{
			name:      "missing display_name",
			items:     []any{map[string]any{"id": "x"}},
			wantIndex: 0,
		},
		{
			name: "wrong element type",
			items: []any{
				map[string]any{"id": "x", "display_name": "y"},
				42,
			},
			wantIndex: 1,
		},
		{
			name:      "wrong code type",
			items:     []any{map[string]any{"id": "x", "display_name": "y", "code": "ten"}},
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog("c1", "name", tt.items, "kind")
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "items", verr.Field)
			assert.Equal(t, tt.wantIndex, verr.Index)
		})
	}
}

func TestCoerceItemOptionalFields(t *testing.T) {
	items, err := CoerceItems([]any{map[string]any{
		"id":           "x",
		"display_name": "Sonora",
		"value":        "SONORA",
		"code":         float64(26),
		"description":  "northern state",
		"metadata":     map[string]any{"region": "northwest"},
	}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 26, items[0].Code)
	assert.Equal(t, "SONORA", items[0].Value)
	assert.Equal(t, map[string]string{"region": "northwest"}, items[0].Metadata)
}

func TestCatalogSetDisplayName(t *testing.T) {
	catalog, err := NewCatalog("c1", "name", nil, "kind")
	require.NoError(t, err)

	catalog.SetDisplayName("new   name")
	assert.Equal(t, "new name", catalog.DisplayName)
}

func TestCatalogAppendItem(t *testing.T) {
	catalog, err := NewCatalog("c1", "name", []any{
		map[string]any{"id": "a", "display_name": "first"},
	}, "kind")
	require.NoError(t, err)

	require.NoError(t, catalog.AppendItem(map[string]any{"id": "b", "display_name": "second  one"}))
	require.Len(t, catalog.Items, 2)
	assert.Equal(t, "second one", catalog.Items[1].DisplayName)

	// Failed appends report the index the element would have taken.
	err = catalog.AppendItem(map[string]any{"display_name": "no id"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 2, verr.Index)
}

func TestCatalogUnmarshalNormalizes(t *testing.T) {
	data := []byte(`{
		"cid": "c1",
		"display_name": "Test   catalog",
		"items": [{"id": "x", "display_name": "y  z"}],
		"kind": "Temporal"
	}`)

	var catalog Catalog
	require.NoError(t, json.Unmarshal(data, &catalog))
	assert.Equal(t, "Test catalog", catalog.DisplayName)
	require.Len(t, catalog.Items, 1)
	assert.Equal(t, "y z", catalog.Items[0].DisplayName)
}

func TestCatalogUnmarshalRejectsUnknownItemKeys(t *testing.T) {
	data := []byte(`{"cid": "c1", "display_name": "n", "items": [{"id": "x", "display_name": "y", "extra": true}], "kind": "k"}`)

	var catalog Catalog
	err := json.Unmarshal(data, &catalog)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, verr.Index)
}

func TestCatalogMarshalFieldNames(t *testing.T) {
	catalog, err := NewCatalog("c1", "Ages", []any{
		map[string]any{"id": "a1", "display_name": "0 to 5", "code": 1},
	}, "INTEREST")
	require.NoError(t, err)

	data, err := json.Marshal(catalog)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"cid": "c1",
		"display_name": "Ages",
		"items": [{"id": "a1", "value": "", "display_name": "0 to 5", "code": 1, "description": "", "metadata": null}],
		"kind": "INTEREST"
	}`, string(data))
}

func TestCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{"cid": "c9", "display_name": "From   disk", "items": [], "kind": "SPATIAL"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	catalog, err := CatalogFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "c9", catalog.CID)
	assert.Equal(t, "From disk", catalog.DisplayName)

	_, err = CatalogFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
