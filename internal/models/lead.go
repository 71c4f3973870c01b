package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Lead configuration lifecycle.
const (
	LeadStatusDraft       = "draft"
	LeadStatusApproved    = "approved"
	LeadStatusProvisioned = "provisioned"
)

// LeadConfiguration is the wizard's output: chosen textiles, print positions
// and the computed price breakdown, persisted as jsonb columns.
type LeadConfiguration struct {
	ID               uuid.UUID
	SchoolID         uuid.UUID
	Status           string
	ShopID           uuid.NullUUID
	SelectedTextiles json.RawMessage
	PrintPositions   json.RawMessage
	PriceCalculation json.RawMessage
	Sponsoring       sql.NullString
	Margin           sql.NullString
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SelectedTextile is one entry of the selected_textiles jsonb column.
type SelectedTextile struct {
	TextileID       uuid.UUID  `json:"textile_id"`
	Colors          []string   `json:"colors"`
	Sizes           []string   `json:"sizes"`
	OverridePriceID *uuid.UUID `json:"override_price_id,omitempty"`
}

// LeadPrintPosition is one entry of the print_positions jsonb column.
type LeadPrintPosition struct {
	TextileID uuid.UUID `json:"textile_id"`
	Position  string    `json:"position"` // front, back, side
	Method    string    `json:"method"`
}

// PriceCalculationEntry is one entry of the price_calculation jsonb column.
type PriceCalculationEntry struct {
	TextileID  uuid.UUID         `json:"textile_id"`
	FinalPrice string            `json:"final_price"`
	Quantity   int               `json:"quantity,omitempty"`
	Breakdown  map[string]string `json:"breakdown,omitempty"`
}

func (l *LeadConfiguration) DecodeSelectedTextiles() ([]SelectedTextile, error) {
	if len(l.SelectedTextiles) == 0 {
		return nil, nil
	}
	var out []SelectedTextile
	if err := json.Unmarshal(l.SelectedTextiles, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *LeadConfiguration) DecodePrintPositions() ([]LeadPrintPosition, error) {
	if len(l.PrintPositions) == 0 {
		return nil, nil
	}
	var out []LeadPrintPosition
	if err := json.Unmarshal(l.PrintPositions, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *LeadConfiguration) DecodePriceCalculation() ([]PriceCalculationEntry, error) {
	if len(l.PriceCalculation) == 0 {
		return nil, nil
	}
	var out []PriceCalculationEntry
	if err := json.Unmarshal(l.PriceCalculation, &out); err != nil {
		return nil, err
	}
	return out, nil
}
