package models

type AssignColorsRequest struct {
	Colors []string `json:"colors" binding:"required"`
}

type ExportProductRequest struct {
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Vendor      string   `json:"vendor,omitempty"`
}
