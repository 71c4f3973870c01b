package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"schoolmerch-backend/internal/apperrors"
	"schoolmerch-backend/internal/models"
	"schoolmerch-backend/internal/shopify"
	"schoolmerch-backend/internal/supabase"
)

// Platform is the external storefront API surface.
// *shopify.Client implements it.
type Platform interface {
	CreateProduct(ctx context.Context, input *shopify.ProductInput) (*shopify.CreateResult, error)
}

// ExportStore is the record-store surface the export path needs.
type ExportStore interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	GetShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error)
	ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error)
	SetProductPlatformID(ctx context.Context, productID uuid.UUID, platformID string) error
}

type ExportService struct {
	store    ExportStore
	platform Platform
	realtime LeadEventPublisher
}

func NewExportService(store ExportStore, platform Platform, realtime LeadEventPublisher) *ExportService {
	return &ExportService{store: store, platform: platform, realtime: realtime}
}

// ExportOutcome carries either the created platform id or the platform's
// user errors. The error list is passed through complete.
type ExportOutcome struct {
	PlatformProductID string
	UserErrors        []shopify.UserError
}

// ExportProduct submits a product with its variant set to the external
// platform and stores the returned platform id on success.
func (s *ExportService) ExportProduct(ctx context.Context, actor Actor, productID uuid.UUID, meta shopify.ExportMeta) (*ExportOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, storeErr(err, "product")
	}
	shop, err := s.store.GetShop(ctx, product.ShopID)
	if err != nil {
		return nil, storeErr(err, "shop")
	}
	if !actor.CanManageSchool(shop.SchoolID) {
		return nil, apperrors.New(apperrors.KindForbidden, "not allowed to export products for this school")
	}
	if product.PlatformProductID.Valid && product.PlatformProductID.String != "" {
		return nil, apperrors.Newf(apperrors.KindInvalidState,
			"product already exported as %s", product.PlatformProductID.String)
	}

	rows, err := s.store.ListVariantsByProduct(ctx, productID)
	if err != nil {
		return nil, storeErr(err, "product variants")
	}

	input, err := shopify.ToProductInput(product, rows, meta)
	if err != nil {
		return nil, err
	}

	result, err := s.platform.CreateProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(result.UserErrors) > 0 {
		return &ExportOutcome{UserErrors: result.UserErrors}, nil
	}

	if err := s.store.SetProductPlatformID(ctx, productID, result.ProductID); err != nil {
		// The platform product exists; losing the id reference is worse
		// than a failed response, so surface it loudly.
		return nil, apperrors.Wrap(apperrors.KindUpstreamFailure,
			"product created on platform but id could not be stored", err)
	}

	if s.realtime != nil {
		if err := s.realtime.PublishLeadEvent(productLeadID(product), "export_completed",
			supabase.ExportCompletedPayload(productID, result.ProductID)); err != nil {
			log.Printf("Export: failed to publish event for product %s: %v", productID, err)
		}
	}

	return &ExportOutcome{PlatformProductID: result.ProductID}, nil
}

func productLeadID(product *models.Product) uuid.UUID {
	if product.LeadConfigID.Valid {
		return product.LeadConfigID.UUID
	}
	return uuid.Nil
}
