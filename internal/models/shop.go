package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Shop lifecycle.
const (
	ShopStatusDraft  = "draft"
	ShopStatusLive   = "live"
	ShopStatusClosed = "closed"
)

// Image types for product assets.
const (
	ImageTypeFront = "front"
	ImageTypeBack  = "back"
	ImageTypeSide  = "side"
)

type Shop struct {
	ID        uuid.UUID
	SchoolID  uuid.UUID
	Slug      string
	Status    string
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product identity for provisioning is the (shop, textile) pair; the table
// carries a unique constraint on it.
type Product struct {
	ID                uuid.UUID
	ShopID            uuid.UUID
	TextileID         uuid.UUID
	LeadConfigID      uuid.NullUUID
	Name              string
	Price             string
	PlatformProductID sql.NullString
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ProductVariant struct {
	ID              uuid.UUID
	ProductID       uuid.UUID
	Name            string
	ColorName       sql.NullString
	SKU             sql.NullString
	AdditionalPrice string
	CreatedAt       time.Time
}

// ProductImage is a bare asset until textile_color_name is set; the
// reassignment engine fans it out into one row per color.
type ProductImage struct {
	ID               uuid.UUID
	ProductID        uuid.UUID
	VariantID        uuid.NullUUID
	TextileColorName sql.NullString
	ImageType        sql.NullString
	ImageURL         sql.NullString
	PrintFileURL     sql.NullString
	CreatedAt        time.Time
}
