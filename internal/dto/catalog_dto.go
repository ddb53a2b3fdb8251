package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Price accepts a JSON number or a numeric string; the service coerces it.
type CreateProductRequest struct {
	Name          string `json:"name"          validate:"required,max=120"`
	NameLocalized string `json:"nameLocalized" validate:"max=120"`
	Price         any    `json:"price"`
}

// UpdateProductRequest is a partial update: absent fields are left alone.
type UpdateProductRequest struct {
	Name          *string `json:"name"          validate:"omitempty,max=120"`
	NameLocalized *string `json:"nameLocalized" validate:"omitempty,max=120"`
	Price         any     `json:"price"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CatalogImportResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}
