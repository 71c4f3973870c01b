package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"schoolmerch-backend/internal/models"
)

func (d *DatabaseClient) GetLeadConfiguration(ctx context.Context, leadID uuid.UUID) (*models.LeadConfiguration, error) {
	var lead models.LeadConfiguration
	err := d.db.QueryRowContext(ctx, `
		SELECT id, school_id, status, shop_id, selected_textiles, print_positions,
		       price_calculation, sponsoring, margin, created_at, updated_at
		FROM lead_configurations
		WHERE id = $1
	`, leadID).Scan(
		&lead.ID, &lead.SchoolID, &lead.Status, &lead.ShopID,
		&lead.SelectedTextiles, &lead.PrintPositions, &lead.PriceCalculation,
		&lead.Sponsoring, &lead.Margin, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get lead configuration: %w", err)
	}

	return &lead, nil
}

// AttachShopToLead sets shop_id and advances the status to approved, but only
// when shop_id is still unset. A prior writer wins; the returned flag reports
// whether this call attached it.
func (d *DatabaseClient) AttachShopToLead(ctx context.Context, leadID, shopID uuid.UUID) (bool, error) {
	res, err := d.db.ExecContext(ctx, `
		UPDATE lead_configurations
		SET shop_id = $2, status = $3, updated_at = NOW()
		WHERE id = $1 AND shop_id IS NULL
	`, leadID, shopID, models.LeadStatusApproved)
	if err != nil {
		return false, fmt.Errorf("failed to attach shop to lead: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return affected > 0, nil
}

func (d *DatabaseClient) UpdateLeadStatus(ctx context.Context, leadID uuid.UUID, status string) error {
	_, err := d.db.ExecContext(ctx, `
		UPDATE lead_configurations
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, leadID, status)
	return err
}
