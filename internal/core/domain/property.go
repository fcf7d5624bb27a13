package domain

// Property is the central real-estate record exchanged with the upstream API.
// Create and update responses carry both the generic ID and the
// entity-specific alias; list and detail reads may omit the alias.
type Property struct {
	ID           string          `json:"id"`
	IDProperty   string          `json:"idProperty,omitempty"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Price        float64         `json:"price"`
	CodeInternal string          `json:"codeInternal"`
	Year         int             `json:"year"`
	IDOwner      string          `json:"idOwner"`
	OwnerName    string          `json:"ownerName,omitempty"`
	Owner        *Owner          `json:"owner,omitempty"`
	Images       []PropertyImage `json:"images,omitempty"`
}

// PropertyImage is an image attached to a property. File carries the image
// content as a base64 data URI, the format the upstream expects and returns.
type PropertyImage struct {
	ID              string `json:"id,omitempty"`
	IDPropertyImage string `json:"idPropertyImage,omitempty"`
	IDProperty      string `json:"idProperty"`
	File            string `json:"file"`
	Enabled         bool   `json:"enabled"`
}

// PropertyFilter narrows and pages a property listing.
type PropertyFilter struct {
	Name      string  `query:"name"`
	Address   string  `query:"address"`
	MinPrice  float64 `query:"minPrice"`
	MaxPrice  float64 `query:"maxPrice"`
	Year      int     `query:"year"`
	Page      int     `query:"page"`
	PageSize  int     `query:"pageSize"`
	SortBy    string  `query:"sortBy"`
	SortOrder string  `query:"sortOrder"`
}
