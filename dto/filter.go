package dto

import (
	"regexp"
	"strings"
)

// InequalityFilter filters a numeric interest attribute by comparison.
type InequalityFilter struct {
	GT *int `json:"gt,omitempty"`
	LT *int `json:"lt,omitempty"`
	EQ *int `json:"eq,omitempty"`
}

// InterestFilter filters one product interest attribute either by an exact
// value or by an inequality, never both.
type InterestFilter struct {
	Value      *string           `json:"value,omitempty"`
	Inequality *InequalityFilter `json:"inequality,omitempty"`
}

// NewInterestFilter enforces the exclusivity rule between value and
// inequality at construction. An empty value counts as unset.
func NewInterestFilter(value string, inequality *InequalityFilter) (*InterestFilter, error) {
	if value != "" && inequality != nil {
		return nil, newValidationError("interest", -1, "provide either a value or an inequality, not both")
	}
	if value == "" && inequality == nil {
		return nil, newValidationError("interest", -1, "provide at least a value or an inequality")
	}
	f := &InterestFilter{Inequality: inequality}
	if value != "" {
		f.Value = &value
	}
	return f, nil
}

// TemporalFilter filters products by a time-based variable range.
type TemporalFilter struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// SpatialFilter filters products by country, state and municipality. A "*"
// segment matches anything.
type SpatialFilter struct {
	Country      string `json:"country"`
	State        string `json:"state"`
	Municipality string `json:"municipality"`
}

// Regex projects the filter into an uppercase anchored pattern over the
// dot-joined spatial path.
func (f SpatialFilter) Regex() string {
	segments := []string{f.Country, f.State, f.Municipality}
	parts := make([]string, len(segments))
	for i, segment := range segments {
		if segment == "*" {
			parts[i] = ".*"
		} else {
			parts[i] = regexp.QuoteMeta(segment)
		}
	}
	return strings.ToUpper("^" + strings.Join(parts, `\.`))
}

// ProductFilter unifies the filter models into a single request body for
// product queries.
type ProductFilter struct {
	Temporal *TemporalFilter  `json:"temporal,omitempty"`
	Spatial  *SpatialFilter   `json:"spatial,omitempty"`
	Interest []InterestFilter `json:"interest"`
}
