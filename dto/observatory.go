package dto

// Observatory is a space from which products and their characteristics are
// observed and queried. It owns its catalogs by embedding: once embedded, a
// catalog belongs to exactly one observatory.
type Observatory struct {
	OBID        string    `json:"obid"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	Catalogs    []Catalog `json:"catalogs"`
	Disabled    bool      `json:"disabled"`
}

// NewObservatory builds an observatory. An empty title falls back to the
// default "Observatory".
func NewObservatory(obid, title, imageURL, description string, catalogs []Catalog) *Observatory {
	if title == "" {
		title = "Observatory"
	}
	return &Observatory{
		OBID:        obid,
		Title:       title,
		ImageURL:    imageURL,
		Description: description,
		Catalogs:    catalogs,
	}
}
