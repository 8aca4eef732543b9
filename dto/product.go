package dto

import (
	"encoding/json"
	"strings"
)

// Product is the visual representation of a combination of catalog values.
// LevelPath and Profile are denormalized projections of the embedded levels:
// segment i of LevelPath is Levels[i].CID and segment i of Profile is
// Levels[i].Value. Both must stay positionally consistent with Levels.
type Product struct {
	PID         string   `json:"pid"`
	Description string   `json:"description"`
	Levels      []Level  `json:"levels"`
	ProductType string   `json:"product_type"`
	LevelPath   string   `json:"level_path"`
	Profile     string   `json:"profile"`
	ProductName string   `json:"product_name"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
}

// NewProduct normalizes and validates a product. Tags are deduplicated in
// order. When LevelPath and Profile are both empty they are derived from
// Levels; otherwise a positional mismatch between the projections and the
// levels fails with a ValidationError.
func NewProduct(p Product) (*Product, error) {
	p.Tags = dedupeTags(p.Tags)
	if p.LevelPath == "" && p.Profile == "" {
		p.LevelPath, p.Profile = projectLevels(p.Levels)
	}
	if err := validateLevelProjection(p.Levels, p.LevelPath, p.Profile); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetLevels replaces the levels and re-derives the level path and profile.
func (p *Product) SetLevels(levels []Level) {
	p.Levels = levels
	p.LevelPath, p.Profile = projectLevels(levels)
}

// AddTag appends a tag unless it is already present.
func (p *Product) AddTag(tag string) {
	p.Tags = dedupeTags(append(p.Tags, tag))
}

// UnmarshalJSON decodes a product and re-runs normalization, deriving the
// level path and profile when both are empty and checking the projection
// otherwise, exactly as NewProduct does.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw.Tags = dedupeTags(raw.Tags)
	if raw.LevelPath == "" && raw.Profile == "" {
		raw.LevelPath, raw.Profile = projectLevels(raw.Levels)
	}
	if err := validateLevelProjection(raw.Levels, raw.LevelPath, raw.Profile); err != nil {
		return err
	}
	*p = Product(raw)
	return nil
}

// projectLevels derives the dot-separated level path and profile from the
// levels in declaration order.
func projectLevels(levels []Level) (levelPath, profile string) {
	if len(levels) == 0 {
		return "", ""
	}
	cids := make([]string, len(levels))
	values := make([]string, len(levels))
	for i, level := range levels {
		cids[i] = level.CID
		values[i] = level.Value
	}
	return strings.Join(cids, "."), strings.Join(values, ".")
}

func validateLevelProjection(levels []Level, levelPath, profile string) error {
	pathSegments := splitPath(levelPath)
	profileSegments := splitPath(profile)

	if len(pathSegments) != len(levels) {
		return newValidationError("level_path", -1,
			"has %d segments but product has %d levels", len(pathSegments), len(levels))
	}
	if len(profileSegments) != len(levels) {
		return newValidationError("profile", -1,
			"has %d segments but product has %d levels", len(profileSegments), len(levels))
	}
	for i, level := range levels {
		if pathSegments[i] != level.CID {
			return newValidationError("level_path", i,
				"segment %q does not match level cid %q", pathSegments[i], level.CID)
		}
		if profileSegments[i] != level.Value {
			return newValidationError("profile", i,
				"segment %q does not match level value %q", profileSegments[i], level.Value)
		}
	}
	return nil
}

func splitPath(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}
