package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"schoolmerch-backend/internal/models"
)

func (d *DatabaseClient) CreateShop(ctx context.Context, schoolID uuid.UUID, slug, status, currency string) (*models.Shop, error) {
	var shop models.Shop
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO shops (id, school_id, slug, status, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, school_id, slug, status, currency, created_at, updated_at
	`, uuid.New(), schoolID, slug, status, currency).Scan(
		&shop.ID, &shop.SchoolID, &shop.Slug, &shop.Status, &shop.Currency,
		&shop.CreatedAt, &shop.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	return &shop, nil
}

func (d *DatabaseClient) GetShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	err := d.db.QueryRowContext(ctx, `
		SELECT id, school_id, slug, status, currency, created_at, updated_at
		FROM shops
		WHERE id = $1
	`, shopID).Scan(
		&shop.ID, &shop.SchoolID, &shop.Slug, &shop.Status, &shop.Currency,
		&shop.CreatedAt, &shop.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return &shop, nil
}

func (d *DatabaseClient) CountProductsForLead(ctx context.Context, leadID uuid.UUID) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM products WHERE lead_config_id = $1
	`, leadID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CreateProduct inserts one product per (shop, textile). The unique
// constraint on that pair makes the provisioning check-then-act race safe:
// a concurrent insert loses here instead of creating a duplicate. Returns
// created=false when the pair already exists.
func (d *DatabaseClient) CreateProduct(ctx context.Context, shopID, textileID, leadID uuid.UUID, name, price string) (*models.Product, bool, error) {
	var product models.Product
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO products (id, shop_id, textile_id, lead_config_id, name, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (shop_id, textile_id) DO NOTHING
		RETURNING id, shop_id, textile_id, lead_config_id, name, price, platform_product_id, created_at, updated_at
	`, uuid.New(), shopID, textileID, leadID, name, price).Scan(
		&product.ID, &product.ShopID, &product.TextileID, &product.LeadConfigID,
		&product.Name, &product.Price, &product.PlatformProductID,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, true, nil
}

func (d *DatabaseClient) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := d.db.QueryRowContext(ctx, `
		SELECT id, shop_id, textile_id, lead_config_id, name, price, platform_product_id, created_at, updated_at
		FROM products
		WHERE id = $1
	`, productID).Scan(
		&product.ID, &product.ShopID, &product.TextileID, &product.LeadConfigID,
		&product.Name, &product.Price, &product.PlatformProductID,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (d *DatabaseClient) ListProductsByShop(ctx context.Context, shopID uuid.UUID) ([]models.Product, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, shop_id, textile_id, lead_config_id, name, price, platform_product_id, created_at, updated_at
		FROM products
		WHERE shop_id = $1
		ORDER BY created_at ASC
	`, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID, &p.ShopID, &p.TextileID, &p.LeadConfigID,
			&p.Name, &p.Price, &p.PlatformProductID, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (d *DatabaseClient) SetProductPlatformID(ctx context.Context, productID uuid.UUID, platformID string) error {
	_, err := d.db.ExecContext(ctx, `
		UPDATE products
		SET platform_product_id = $2, updated_at = NOW()
		WHERE id = $1
	`, productID, platformID)
	return err
}

// CreateProductVariant is existence-checked via the unique constraint on
// (product_id, name, color_name) so re-running provisioning or resuming a
// partial run never duplicates a variant.
func (d *DatabaseClient) CreateProductVariant(ctx context.Context, productID uuid.UUID, name string, colorName *string) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO product_variants (id, product_id, name, color_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, name, color_name) DO NOTHING
	`, uuid.New(), productID, name, colorName)
	if err != nil {
		return fmt.Errorf("failed to create product variant: %w", err)
	}
	return nil
}

func (d *DatabaseClient) ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, product_id, name, color_name, sku, additional_price, created_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY created_at ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	var variants []models.ProductVariant
	for rows.Next() {
		var v models.ProductVariant
		err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.ColorName, &v.SKU, &v.AdditionalPrice, &v.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, v)
	}

	return variants, rows.Err()
}

// FindVariantByColor returns the first variant carrying the given color, or
// nil when the product has none for it.
func (d *DatabaseClient) FindVariantByColor(ctx context.Context, productID uuid.UUID, colorName string) (*models.ProductVariant, error) {
	var v models.ProductVariant
	err := d.db.QueryRowContext(ctx, `
		SELECT id, product_id, name, color_name, sku, additional_price, created_at
		FROM product_variants
		WHERE product_id = $1 AND color_name = $2
		ORDER BY created_at ASC
		LIMIT 1
	`, productID, colorName).Scan(
		&v.ID, &v.ProductID, &v.Name, &v.ColorName, &v.SKU, &v.AdditionalPrice, &v.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find variant: %w", err)
	}

	return &v, nil
}
