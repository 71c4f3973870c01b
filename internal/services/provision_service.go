package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"schoolmerch-backend/internal/apperrors"
	"schoolmerch-backend/internal/models"
	"schoolmerch-backend/internal/naming"
	"schoolmerch-backend/internal/pricing"
	"schoolmerch-backend/internal/supabase"
	"schoolmerch-backend/internal/variants"
)

// opTimeout bounds one provisioning operation end to end.
const opTimeout = 30 * time.Second

// ProvisionStore is the record-store surface the orchestrator needs.
// *supabase.DatabaseClient implements it; tests supply fakes.
type ProvisionStore interface {
	GetLeadConfiguration(ctx context.Context, leadID uuid.UUID) (*models.LeadConfiguration, error)
	GetSchool(ctx context.Context, schoolID uuid.UUID) (*models.School, error)
	GetTextile(ctx context.Context, textileID uuid.UUID) (*models.Textile, error)
	GetTextilePrices(ctx context.Context, textileID uuid.UUID) ([]models.TextilePrice, error)
	GetPrintMethodCostsByMethod(ctx context.Context, method string) ([]models.PrintMethodCost, error)
	GetPrintMethodCost(ctx context.Context, id uuid.UUID) (*models.PrintMethodCost, error)
	GetPrintCostsByPosition(ctx context.Context, position string) ([]models.PrintCost, error)
	GetHandlingCosts(ctx context.Context) ([]models.HandlingCost, error)
	CreateShop(ctx context.Context, schoolID uuid.UUID, slug, status, currency string) (*models.Shop, error)
	AttachShopToLead(ctx context.Context, leadID, shopID uuid.UUID) (bool, error)
	UpdateLeadStatus(ctx context.Context, leadID uuid.UUID, status string) error
	CountProductsForLead(ctx context.Context, leadID uuid.UUID) (int, error)
	CreateProduct(ctx context.Context, shopID, textileID, leadID uuid.UUID, name, price string) (*models.Product, bool, error)
	CreateProductVariant(ctx context.Context, productID uuid.UUID, name string, colorName *string) error
}

// LeadEventPublisher pushes lifecycle events to the wizard UI.
type LeadEventPublisher interface {
	PublishLeadEvent(leadID uuid.UUID, event string, payload map[string]interface{}) error
}

type ProvisionService struct {
	store    ProvisionStore
	realtime LeadEventPublisher
}

func NewProvisionService(store ProvisionStore, realtime LeadEventPublisher) *ProvisionService {
	return &ProvisionService{
		store:    store,
		realtime: realtime,
	}
}

// ProvisionResult reports the per-textile outcomes of ProvisionProducts.
type ProvisionResult struct {
	ShopID    uuid.UUID
	Requested int
	Created   int
	Failures  []models.ItemFailure
	Warnings  []string
}

// Confirm moves a lead from draft to approved, creating its shop exactly
// once. Re-invoking after the shop exists returns the existing shop id.
func (s *ProvisionService) Confirm(ctx context.Context, leadID uuid.UUID, actor Actor) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	lead, err := s.store.GetLeadConfiguration(ctx, leadID)
	if err != nil {
		return uuid.Nil, storeErr(err, "lead configuration")
	}

	if !actor.CanManageSchool(lead.SchoolID) {
		return uuid.Nil, apperrors.New(apperrors.KindForbidden, "caller may not manage this school")
	}

	if lead.ShopID.Valid {
		return lead.ShopID.UUID, nil
	}

	school, err := s.store.GetSchool(ctx, lead.SchoolID)
	if err != nil {
		return uuid.Nil, storeErr(err, "school")
	}

	slug := shopSlug(school)
	shop, err := s.store.CreateShop(ctx, school.ID, slug, models.ShopStatusDraft, "EUR")
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to create shop", err)
	}

	attached, err := s.store.AttachShopToLead(ctx, leadID, shop.ID)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to attach shop", err)
	}
	if !attached {
		// A concurrent confirm won the attach; its shop is the one that
		// counts. The shop created here stays unreferenced in draft.
		current, err := s.store.GetLeadConfiguration(ctx, leadID)
		if err != nil {
			return uuid.Nil, storeErr(err, "lead configuration")
		}
		if current.ShopID.Valid {
			return current.ShopID.UUID, nil
		}
		return uuid.Nil, apperrors.New(apperrors.KindInvalidState, "shop attachment lost without a winner")
	}

	log.Printf("Confirmed lead %s: created shop %s (%s)", leadID, shop.ID, slug)
	if s.realtime != nil {
		_ = s.realtime.PublishLeadEvent(leadID, "configuration_confirmed",
			supabase.ConfigurationConfirmedPayload(leadID, shop.ID))
	}

	return shop.ID, nil
}

// ProvisionProducts creates one product per selected textile plus its variant
// matrix. Admin only. Re-invocation on a provisioned lead is rejected with
// AlreadyProvisioned; a single textile's failure is recorded and skipped.
func (s *ProvisionService) ProvisionProducts(ctx context.Context, leadID uuid.UUID, actor Actor) (*ProvisionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, apperrors.New(apperrors.KindForbidden, "provisioning requires the admin capability")
	}

	lead, err := s.store.GetLeadConfiguration(ctx, leadID)
	if err != nil {
		return nil, storeErr(err, "lead configuration")
	}

	switch lead.Status {
	case models.LeadStatusApproved:
	case models.LeadStatusProvisioned:
		return nil, apperrors.New(apperrors.KindAlreadyProvisioned, "lead configuration is already provisioned")
	default:
		return nil, apperrors.Newf(apperrors.KindInvalidState, "lead configuration must be approved, is %s", lead.Status)
	}
	if !lead.ShopID.Valid {
		return nil, apperrors.New(apperrors.KindInvalidState, "lead configuration has no shop attached")
	}

	count, err := s.store.CountProductsForLead(ctx, leadID)
	if err != nil {
		return nil, storeErr(err, "product count")
	}
	if count > 0 {
		return nil, apperrors.New(apperrors.KindAlreadyProvisioned, "products already exist for this lead configuration")
	}

	selected, err := lead.DecodeSelectedTextiles()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "selected_textiles is malformed", err)
	}
	if len(selected) == 0 {
		return nil, apperrors.New(apperrors.KindInvalidInput, "lead configuration has no selected textiles")
	}

	positions, err := lead.DecodePrintPositions()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "print_positions is malformed", err)
	}
	priceEntries, err := lead.DecodePriceCalculation()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "price_calculation is malformed", err)
	}

	result := &ProvisionResult{
		ShopID:    lead.ShopID.UUID,
		Requested: len(selected),
	}

	conflicts := 0
	for _, st := range selected {
		if err := s.provisionTextile(ctx, lead, st, positions, priceEntries, result); err != nil {
			if apperrors.IsKind(err, apperrors.KindAlreadyProvisioned) {
				conflicts++
			}
			result.Failures = append(result.Failures, models.ItemFailure{
				Item:    st.TextileID.String(),
				Message: err.Error(),
			})
			log.Printf("Provisioning lead %s: textile %s failed: %v", leadID, st.TextileID, err)
		}
	}

	if result.Created == 0 && conflicts == result.Requested {
		// Every insert conflicted: a concurrent run already provisioned.
		return nil, apperrors.New(apperrors.KindAlreadyProvisioned, "products already exist for this lead configuration")
	}

	if result.Created > 0 {
		if err := s.store.UpdateLeadStatus(ctx, leadID, models.LeadStatusProvisioned); err != nil {
			log.Printf("Provisioning lead %s: failed to advance status: %v", leadID, err)
		}
		if s.realtime != nil {
			_ = s.realtime.PublishLeadEvent(leadID, "products_provisioned",
				supabase.ProductsProvisionedPayload(leadID, result.Created, result.Requested))
		}
	}

	return result, nil
}

func (s *ProvisionService) provisionTextile(
	ctx context.Context,
	lead *models.LeadConfiguration,
	st models.SelectedTextile,
	positions []models.LeadPrintPosition,
	priceEntries []models.PriceCalculationEntry,
	result *ProvisionResult,
) error {
	textile, err := s.store.GetTextile(ctx, st.TextileID)
	if err != nil {
		return storeErr(err, "textile")
	}

	finalPrice, err := s.resolvePrice(ctx, lead, st, textile, positions, priceEntries)
	if err != nil {
		return err
	}

	name := textile.Name
	if textile.Brand.Valid && textile.Brand.String != "" {
		name = name + " - " + textile.Brand.String
	}

	product, created, err := s.store.CreateProduct(ctx, lead.ShopID.UUID, st.TextileID, lead.ID, name, finalPrice)
	if err != nil {
		return apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to create product", err)
	}
	if !created {
		return apperrors.New(apperrors.KindAlreadyProvisioned, "product already exists for this textile")
	}

	matrix := variants.Build(st.Colors, st.Sizes)
	if len(matrix) == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("textile %s has neither colors nor sizes selected; product created without variants", st.TextileID))
	}
	for _, v := range matrix {
		if err := s.store.CreateProductVariant(ctx, product.ID, v.Name, v.ColorName); err != nil {
			return apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to create product variant", err)
		}
	}

	result.Created++
	return nil
}

// resolvePrice assembles the pricing input for one textile: price override,
// the method cost behind each of its print positions, the active handling
// cost and the order quantity from the wizard's calculation.
func (s *ProvisionService) resolvePrice(
	ctx context.Context,
	lead *models.LeadConfiguration,
	st models.SelectedTextile,
	textile *models.Textile,
	positions []models.LeadPrintPosition,
	priceEntries []models.PriceCalculationEntry,
) (string, error) {
	prices, err := s.store.GetTextilePrices(ctx, st.TextileID)
	if err != nil {
		return "", storeErr(err, "textile prices")
	}

	var printCosts []models.PrintMethodCost
	for _, pos := range positions {
		if pos.TextileID != st.TextileID {
			continue
		}
		cost, err := s.printMethodCost(ctx, pos)
		if err != nil {
			return "", err
		}
		if cost != nil {
			printCosts = append(printCosts, *cost)
		}
	}

	handlingCosts, err := s.store.GetHandlingCosts(ctx)
	if err != nil {
		return "", storeErr(err, "handling costs")
	}

	quantity := 1
	for _, entry := range priceEntries {
		if entry.TextileID == st.TextileID && entry.Quantity > 0 {
			quantity = entry.Quantity
			break
		}
	}

	resolved, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile:       textile,
		OverridePrice: pricing.ActiveTextilePrice(prices),
		PrintCosts:    printCosts,
		HandlingCost:  pricing.ActiveHandlingCost(handlingCosts),
		Quantity:      quantity,
		Margin:        nullString(lead.Margin),
		Sponsoring:    nullString(lead.Sponsoring),
	})
	if err != nil {
		return "", err
	}

	return resolved.FinalString(), nil
}

// printMethodCost resolves one print position to its method cost row: by
// method name when the wizard recorded one, else through the per-position
// print_costs mapping.
func (s *ProvisionService) printMethodCost(ctx context.Context, pos models.LeadPrintPosition) (*models.PrintMethodCost, error) {
	if pos.Method != "" {
		costs, err := s.store.GetPrintMethodCostsByMethod(ctx, pos.Method)
		if err != nil {
			return nil, storeErr(err, "print method costs")
		}
		if len(costs) == 0 {
			return nil, apperrors.Newf(apperrors.KindNotFound, "no active cost for print method %q", pos.Method)
		}
		return &costs[0], nil
	}

	mapped, err := s.store.GetPrintCostsByPosition(ctx, pos.Position)
	if err != nil {
		return nil, storeErr(err, "print costs")
	}
	if len(mapped) == 0 {
		return nil, nil
	}
	cost, err := s.store.GetPrintMethodCost(ctx, mapped[0].PrintMethodCostID)
	if err != nil {
		return nil, storeErr(err, "print method cost")
	}
	return cost, nil
}

func shopSlug(school *models.School) string {
	base := school.Name
	if school.ShortCode.Valid && school.ShortCode.String != "" {
		base = school.ShortCode.String
	}
	suffix := uuid.New().String()[:6]
	return naming.Normalize(base, "shop") + "-" + suffix
}

func nullString(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

// storeErr maps record-store failures onto the service taxonomy.
func storeErr(err error, what string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperrors.Wrap(apperrors.KindNotFound, what+" not found", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(apperrors.KindTimeout, what+" lookup timed out", err)
	default:
		return apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to load "+what, err)
	}
}
