package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"schoolmerch-backend/internal/models"
)

func (d *DatabaseClient) GetProductImage(ctx context.Context, imageID uuid.UUID) (*models.ProductImage, error) {
	var img models.ProductImage
	err := d.db.QueryRowContext(ctx, `
		SELECT id, product_id, variant_id, textile_color_name, image_type, image_url, print_file_url, created_at
		FROM product_images
		WHERE id = $1
	`, imageID).Scan(
		&img.ID, &img.ProductID, &img.VariantID, &img.TextileColorName,
		&img.ImageType, &img.ImageURL, &img.PrintFileURL, &img.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get product image: %w", err)
	}

	return &img, nil
}

// FindProductImage looks up the attributed row for (product, color, type),
// returning nil when it does not exist yet. The reassignment engine checks
// existence before insert, which keeps the fan-out idempotent.
func (d *DatabaseClient) FindProductImage(ctx context.Context, productID uuid.UUID, colorName, imageType string) (*models.ProductImage, error) {
	var img models.ProductImage
	err := d.db.QueryRowContext(ctx, `
		SELECT id, product_id, variant_id, textile_color_name, image_type, image_url, print_file_url, created_at
		FROM product_images
		WHERE product_id = $1 AND textile_color_name = $2 AND image_type = $3
		LIMIT 1
	`, productID, colorName, imageType).Scan(
		&img.ID, &img.ProductID, &img.VariantID, &img.TextileColorName,
		&img.ImageType, &img.ImageURL, &img.PrintFileURL, &img.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product image: %w", err)
	}

	return &img, nil
}

func (d *DatabaseClient) CreateProductImage(ctx context.Context, img *models.ProductImage) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO product_images (id, product_id, variant_id, textile_color_name, image_type, image_url, print_file_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, img.ID, img.ProductID, img.VariantID, img.TextileColorName, img.ImageType, img.ImageURL, img.PrintFileURL)
	if err != nil {
		return fmt.Errorf("failed to create product image: %w", err)
	}
	return nil
}

func (d *DatabaseClient) UpdateProductImageURLs(ctx context.Context, imageID uuid.UUID, imageURL, printFileURL sql.NullString) error {
	_, err := d.db.ExecContext(ctx, `
		UPDATE product_images
		SET image_url = COALESCE($2, image_url),
		    print_file_url = COALESCE($3, print_file_url)
		WHERE id = $1
	`, imageID, imageURL, printFileURL)
	return err
}

func (d *DatabaseClient) DeleteProductImage(ctx context.Context, imageID uuid.UUID) error {
	_, err := d.db.ExecContext(ctx, `
		DELETE FROM product_images
		WHERE id = $1
	`, imageID)
	return err
}

// ListAttributedImages returns the rows that already carry a color.
func (d *DatabaseClient) ListAttributedImages(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, product_id, variant_id, textile_color_name, image_type, image_url, print_file_url, created_at
		FROM product_images
		WHERE product_id = $1 AND textile_color_name IS NOT NULL
		ORDER BY created_at ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributed images: %w", err)
	}
	defer rows.Close()

	var images []models.ProductImage
	for rows.Next() {
		var img models.ProductImage
		err := rows.Scan(
			&img.ID, &img.ProductID, &img.VariantID, &img.TextileColorName,
			&img.ImageType, &img.ImageURL, &img.PrintFileURL, &img.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product image: %w", err)
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

// CountImagesByURL counts rows still referencing a physical file. The rename
// pass only deletes an old object when this drops to zero.
func (d *DatabaseClient) CountImagesByURL(ctx context.Context, url string) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM product_images
		WHERE image_url = $1 OR print_file_url = $1
	`, url).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count image references: %w", err)
	}
	return count, nil
}
