package dto

import (
	"encoding/json"
	"fmt"
	"os"
)

// CatalogItem is a single entry inside a Catalog. Items are embedded: they
// have no remote identity of their own until the owning catalog is submitted.
type CatalogItem struct {
	ID          string            `json:"id"`
	Value       string            `json:"value"`
	DisplayName string            `json:"display_name"`
	Code        int               `json:"code"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

// Catalog is an ordered collection of items used to organize and validate
// attributes across a category (e.g. TEMPORAL, SPATIAL, INTEREST).
//
// DisplayName is whitespace-collapsed at construction and on every mutation,
// recursively for the embedded items.
type Catalog struct {
	CID         string        `json:"cid"`
	DisplayName string        `json:"display_name"`
	Items       []CatalogItem `json:"items"`
	Kind        string        `json:"kind"`
}

// NewCatalog builds a normalized catalog. Item elements may be CatalogItem
// values, pointers, or untyped key/value mappings; mappings are structurally
// coerced and rejected when their shape does not match CatalogItem.
func NewCatalog(cid, displayName string, items []any, kind string) (*Catalog, error) {
	coerced, err := CoerceItems(items)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		CID:         cid,
		DisplayName: CollapseWhitespace(displayName),
		Items:       coerced,
		Kind:        kind,
	}, nil
}

// SetDisplayName replaces the display name, collapsing internal whitespace.
func (c *Catalog) SetDisplayName(name string) {
	c.DisplayName = CollapseWhitespace(name)
}

// AppendItem coerces and appends one item to the catalog.
func (c *Catalog) AppendItem(item any) error {
	coerced, err := coerceItem(len(c.Items), item)
	if err != nil {
		return err
	}
	c.Items = append(c.Items, coerced)
	return nil
}

// UnmarshalJSON decodes a catalog and re-runs normalization, so decoded
// values satisfy the same invariants as constructed ones. Item objects go
// through the same structural coercion as untyped mappings.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var raw struct {
		CID         string            `json:"cid"`
		DisplayName string            `json:"display_name"`
		Items       []json.RawMessage `json:"items"`
		Kind        string            `json:"kind"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	items := make([]CatalogItem, 0, len(raw.Items))
	for i, msg := range raw.Items {
		var m map[string]any
		if err := json.Unmarshal(msg, &m); err != nil {
			return newValidationError("items", i, "expected an object, got %s", string(msg))
		}
		item, err := itemFromMap(i, m)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	c.CID = raw.CID
	c.DisplayName = CollapseWhitespace(raw.DisplayName)
	c.Items = items
	c.Kind = raw.Kind
	return nil
}

// CatalogFromFile reads a catalog definition from a JSON file and returns the
// normalized result.
func CatalogFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}
	return &c, nil
}

// CoerceItems converts a mixed slice of CatalogItem values, pointers, and
// untyped mappings into normalized CatalogItems. Elements that cannot be
// coerced fail with a ValidationError naming their index.
func CoerceItems(raw []any) ([]CatalogItem, error) {
	items := make([]CatalogItem, 0, len(raw))
	for i, el := range raw {
		item, err := coerceItem(i, el)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func coerceItem(index int, el any) (CatalogItem, error) {
	switch v := el.(type) {
	case CatalogItem:
		v.DisplayName = CollapseWhitespace(v.DisplayName)
		return v, nil
	case *CatalogItem:
		item := *v
		item.DisplayName = CollapseWhitespace(item.DisplayName)
		return item, nil
	case map[string]any:
		return itemFromMap(index, v)
	default:
		return CatalogItem{}, newValidationError("items", index, "cannot coerce %T into a catalog item", el)
	}
}

// itemFromMap matches mapping keys against CatalogItem fields. The id and
// display_name keys are required; unmatched keys are rejected.
func itemFromMap(index int, m map[string]any) (CatalogItem, error) {
	var item CatalogItem
	var hasID, hasName bool

	for key, value := range m {
		switch key {
		case "id":
			s, ok := value.(string)
			if !ok {
				return item, newValidationError("items", index, "id must be a string, got %T", value)
			}
			item.ID = s
			hasID = true
		case "value":
			s, ok := value.(string)
			if !ok {
				return item, newValidationError("items", index, "value must be a string, got %T", value)
			}
			item.Value = s
		case "display_name":
			s, ok := value.(string)
			if !ok {
				return item, newValidationError("items", index, "display_name must be a string, got %T", value)
			}
			item.DisplayName = s
			hasName = true
		case "code":
			switch n := value.(type) {
			case int:
				item.Code = n
			case float64:
				item.Code = int(n)
			default:
				return item, newValidationError("items", index, "code must be an integer, got %T", value)
			}
		case "description":
			s, ok := value.(string)
			if !ok {
				return item, newValidationError("items", index, "description must be a string, got %T", value)
			}
			item.Description = s
		case "metadata":
			md, err := metadataFromValue(index, value)
			if err != nil {
				return item, err
			}
			item.Metadata = md
		default:
			return item, newValidationError("items", index, "unmatched key %q", key)
		}
	}

	if !hasID {
		return item, newValidationError("items", index, "missing required key %q", "id")
	}
	if !hasName {
		return item, newValidationError("items", index, "missing required key %q", "display_name")
	}

	item.DisplayName = CollapseWhitespace(item.DisplayName)
	return item, nil
}

func metadataFromValue(index int, value any) (map[string]string, error) {
	switch md := value.(type) {
	case map[string]string:
		return md, nil
	case map[string]any:
		out := make(map[string]string, len(md))
		for k, v := range md {
			s, ok := v.(string)
			if !ok {
				return nil, newValidationError("items", index, "metadata value for %q must be a string, got %T", k, v)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, newValidationError("items", index, "metadata must be a string mapping, got %T", value)
	}
}
