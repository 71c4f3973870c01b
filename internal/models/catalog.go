package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type School struct {
	ID        uuid.UUID
	Name      string
	ShortCode sql.NullString
	CreatedAt time.Time
}

// Textile is a catalog garment. Reference data, never written by this service.
type Textile struct {
	ID              uuid.UUID
	Name            string
	Brand           sql.NullString
	BasePrice       string
	AvailableColors pq.StringArray
	AvailableSizes  pq.StringArray
	CreatedAt       time.Time
}

// TextilePrice is an admin-configured override for a textile's base price.
type TextilePrice struct {
	ID        uuid.UUID
	TextileID uuid.UUID
	Price     string
	Active    bool
	CreatedAt time.Time
}

// PrintCost links a print position to the method used there.
type PrintCost struct {
	ID                uuid.UUID
	Position          string
	PrintMethodCostID uuid.UUID
	Active            bool
	CreatedAt         time.Time
}

// PrintMethodCost carries per-unit cost plus optional volume tiers.
// Cost columns are stored as text in the admin tables and parsed at
// resolution time; a tier left empty means no discount at that tier.
type PrintMethodCost struct {
	ID           uuid.UUID
	Method       string
	CostPerUnit  string
	Cost50Units  sql.NullString
	Cost100Units sql.NullString
	Active       bool
	CreatedAt    time.Time
}

type HandlingCost struct {
	ID        uuid.UUID
	Cost      string
	Active    bool
	CreatedAt time.Time
}
