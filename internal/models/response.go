package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ConfirmResponse struct {
	LeadID string `json:"lead_id"`
	ShopID string `json:"shop_id"`
	Status string `json:"status"`
}

// ItemFailure reports one failed item of a multi-item operation.
type ItemFailure struct {
	Item    string `json:"item"`
	Message string `json:"message"`
}

// ProvisionResponse reports per-textile outcomes. Success is true only when
// zero items failed.
type ProvisionResponse struct {
	LeadID    string        `json:"lead_id"`
	ShopID    string        `json:"shop_id"`
	Requested int           `json:"requested"`
	Created   int           `json:"created"`
	Success   bool          `json:"success"`
	Failures  []ItemFailure `json:"failures,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
}

// ColorAssignResult is the per-color outcome of an asset reassignment.
type ColorAssignResult struct {
	Color          string `json:"color"`
	ImageURL       string `json:"image_url,omitempty"`
	OriginalDelete string `json:"original_delete,omitempty"` // deleted, skipped, already_gone
	Error          string `json:"error,omitempty"`
}

type AssignColorsResponse struct {
	ImageID   string              `json:"image_id"`
	Attempted int                 `json:"attempted"`
	Succeeded int                 `json:"succeeded"`
	Success   bool                `json:"success"`
	Results   []ColorAssignResult `json:"results"`
}

// RenameResult is the per-image outcome of a rename pass.
type RenameResult struct {
	ImageID   string `json:"image_id"`
	OldPath   string `json:"old_path,omitempty"`
	NewPath   string `json:"new_path,omitempty"`
	Repointed bool   `json:"repointed,omitempty"`
	Skipped   bool   `json:"skipped,omitempty"`
	Error     string `json:"error,omitempty"`
}

type RenameAllResponse struct {
	ProductID string         `json:"product_id"`
	Attempted int            `json:"attempted"`
	Succeeded int            `json:"succeeded"`
	Success   bool           `json:"success"`
	Results   []RenameResult `json:"results"`
}

// PlatformUserError is a field-scoped error returned by the storefront
// platform. Every entry the platform returns reaches the caller.
type PlatformUserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

type ExportResponse struct {
	ProductID         string              `json:"product_id"`
	PlatformProductID string              `json:"platform_product_id,omitempty"`
	Success           bool                `json:"success"`
	UserErrors        []PlatformUserError `json:"user_errors,omitempty"`
}

type ShopResponse struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"school_id"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductSummary struct {
	ID                string    `json:"id"`
	TextileID         string    `json:"textile_id"`
	Name              string    `json:"name"`
	Price             string    `json:"price"`
	PlatformProductID string    `json:"platform_product_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type ProductListResponse struct {
	ShopID   string           `json:"shop_id"`
	Products []ProductSummary `json:"products"`
}
