package dto

// Level is one node of the hierarchical classification path that positions a
// product inside a catalog taxonomy. Index defines the ordering within the
// product's level path; CID references the catalog item by identifier.
type Level struct {
	Index int    `json:"index"`
	CID   string `json:"cid"`
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

// LevelRef is a lightweight reference to a catalog carrying its display
// ordering. Used as the wire format when updating the catalogs of an
// observatory.
type LevelRef struct {
	Level int    `json:"level"`
	CID   string `json:"cid"`
}
