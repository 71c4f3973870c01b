package services

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"schoolmerch-backend/internal/apperrors"
	"schoolmerch-backend/internal/models"
	"schoolmerch-backend/internal/naming"
	"schoolmerch-backend/internal/supabase"
)

// DeleteOutcome states what happened to the original object during a color
// fan-out. Exactly one color records deleted or already_gone; the rest are
// skipped. Modeling it explicitly keeps the one-time-delete invariant
// testable independently of iteration order.
type DeleteOutcome string

const (
	DeleteOutcomeDeleted     DeleteOutcome = "deleted"
	DeleteOutcomeSkipped     DeleteOutcome = "skipped"
	DeleteOutcomeAlreadyGone DeleteOutcome = "already_gone"
)

// AssetStore is the record-store surface the asset engine needs.
type AssetStore interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	GetShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error)
	GetProductImage(ctx context.Context, imageID uuid.UUID) (*models.ProductImage, error)
	FindProductImage(ctx context.Context, productID uuid.UUID, colorName, imageType string) (*models.ProductImage, error)
	CreateProductImage(ctx context.Context, img *models.ProductImage) error
	UpdateProductImageURLs(ctx context.Context, imageID uuid.UUID, imageURL, printFileURL sql.NullString) error
	DeleteProductImage(ctx context.Context, imageID uuid.UUID) error
	ListAttributedImages(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error)
	CountImagesByURL(ctx context.Context, url string) (int, error)
	FindVariantByColor(ctx context.Context, productID uuid.UUID, colorName string) (*models.ProductVariant, error)
}

// ObjectStore is the blob-store surface for one bucket.
// *supabase.StorageClient implements it.
type ObjectStore interface {
	Upload(storagePath string, data []byte, contentType string) (string, error)
	Download(storagePath string) ([]byte, error)
	Delete(storagePath string) error
	Exists(storagePath string) (bool, error)
	PublicURL(storagePath string) string
	Bucket() string
}

type AssetService struct {
	store  AssetStore
	images ObjectStore
	prints ObjectStore

	// Per-product mutexes: batch rename and single reassignment both
	// read-modify-write the same storage paths and must not interleave.
	locks sync.Map
}

func NewAssetService(store AssetStore, images, prints ObjectStore) *AssetService {
	return &AssetService{
		store:  store,
		images: images,
		prints: prints,
	}
}

func (s *AssetService) productLock(productID uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(productID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ColorOutcome is one color's result of AssignToColors.
type ColorOutcome struct {
	Color          string
	ImageURL       string
	OriginalDelete DeleteOutcome
	Err            error
}

type AssignResult struct {
	AlreadyAttributed bool
	Outcomes          []ColorOutcome
}

// AssignToColors fans a bare uploaded asset out into one attributed
// ProductImage row per target color. Destination filenames are a pure
// function of (shop, product, color, type), so re-running after a partial
// failure resumes safely; running on an already-attributed asset is a no-op.
func (s *AssetService) AssignToColors(ctx context.Context, imageID, productID uuid.UUID, colors []string) (*AssignResult, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	mu := s.productLock(productID)
	mu.Lock()
	defer mu.Unlock()

	img, err := s.store.GetProductImage(ctx, imageID)
	if err != nil {
		return nil, storeErr(err, "product image")
	}
	if img.ProductID != productID {
		return nil, apperrors.New(apperrors.KindInvalidInput, "image does not belong to this product")
	}
	if img.TextileColorName.Valid {
		return &AssignResult{AlreadyAttributed: true}, nil
	}
	if len(colors) == 0 {
		return nil, apperrors.New(apperrors.KindInvalidInput, "no target colors given")
	}
	if !img.ImageURL.Valid || img.ImageURL.String == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "image has no frontend URL to reassign")
	}

	ref, err := supabase.ParseObjectURL(img.ImageURL.String)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "image URL is not a storage object URL", err)
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, storeErr(err, "product")
	}
	shop, err := s.store.GetShop(ctx, product.ShopID)
	if err != nil {
		return nil, storeErr(err, "shop")
	}

	// Download once. Later iterations must never read the original object;
	// it is deleted after the first successful color.
	data, err := s.images.Download(ref.Path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to download original image", err)
	}
	contentType := http.DetectContentType(data)

	imageType := models.ImageTypeFront
	if img.ImageType.Valid && img.ImageType.String != "" {
		imageType = img.ImageType.String
	}

	result := &AssignResult{}
	originalHandled := false

	for _, color := range colors {
		outcome := ColorOutcome{Color: color, OriginalDelete: DeleteOutcomeSkipped}

		filename := naming.ImageFileName(shop.Slug, product.Name, color, imageType, ref.Ext())
		dest := ref.Sibling(filename)

		url, err := s.images.Upload(dest.Path, data, contentType)
		if err != nil {
			outcome.Err = apperrors.Wrap(apperrors.KindUpstreamFailure, "upload failed", err)
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}
		outcome.ImageURL = url

		if err := s.upsertColorRow(ctx, img, productID, color, imageType, url); err != nil {
			outcome.Err = err
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}

		if !originalHandled {
			outcome.OriginalDelete = s.deleteOriginal(ref)
			originalHandled = true
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	if originalHandled {
		if err := s.store.DeleteProductImage(ctx, img.ID); err != nil {
			log.Printf("Assign colors: failed to delete bare image row %s: %v", img.ID, err)
		}
	}

	return result, nil
}

// upsertColorRow updates the existing (product, color, type) row or inserts a
// new one carrying the variant reference when one exists for the color.
func (s *AssetService) upsertColorRow(ctx context.Context, bare *models.ProductImage, productID uuid.UUID, color, imageType, url string) error {
	existing, err := s.store.FindProductImage(ctx, productID, color, imageType)
	if err != nil {
		return storeErr(err, "product image")
	}

	imageURL := sql.NullString{String: url, Valid: true}
	if existing != nil {
		if err := s.store.UpdateProductImageURLs(ctx, existing.ID, imageURL, bare.PrintFileURL); err != nil {
			return apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to update image row", err)
		}
		return nil
	}

	var variantID uuid.NullUUID
	variant, err := s.store.FindVariantByColor(ctx, productID, color)
	if err != nil {
		return storeErr(err, "product variant")
	}
	if variant != nil {
		variantID = uuid.NullUUID{UUID: variant.ID, Valid: true}
	}

	row := &models.ProductImage{
		ID:               uuid.New(),
		ProductID:        productID,
		VariantID:        variantID,
		TextileColorName: sql.NullString{String: color, Valid: true},
		ImageType:        sql.NullString{String: imageType, Valid: true},
		ImageURL:         imageURL,
		PrintFileURL:     bare.PrintFileURL,
	}
	if err := s.store.CreateProductImage(ctx, row); err != nil {
		return apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to insert image row", err)
	}
	return nil
}

// deleteOriginal removes the pre-attribution object exactly once. The
// existence re-check makes a blind retry safe: an object already removed by
// a concurrent run reports already_gone instead of failing.
func (s *AssetService) deleteOriginal(ref supabase.ObjectRef) DeleteOutcome {
	exists, err := s.images.Exists(ref.Path)
	if err == nil && !exists {
		return DeleteOutcomeAlreadyGone
	}
	if err := s.images.Delete(ref.Path); err != nil {
		log.Printf("Assign colors: failed to delete original object %s: %v", ref.Path, err)
		return DeleteOutcomeAlreadyGone
	}
	return DeleteOutcomeDeleted
}

// RenameOutcome is one image's result of a rename pass.
type RenameOutcome struct {
	ImageID   uuid.UUID
	OldPath   string
	NewPath   string
	Repointed bool
	Skipped   bool
	Err       error
}

// RenameAllAttributed re-derives the expected filename for every attributed
// image of a product and moves mismatches. When the destination already
// exists in storage only the database URL is repointed; the old object is
// deleted only when no other row still references its URL.
func (s *AssetService) RenameAllAttributed(ctx context.Context, productID uuid.UUID) ([]RenameOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	mu := s.productLock(productID)
	mu.Lock()
	defer mu.Unlock()

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, storeErr(err, "product")
	}
	shop, err := s.store.GetShop(ctx, product.ShopID)
	if err != nil {
		return nil, storeErr(err, "shop")
	}

	images, err := s.store.ListAttributedImages(ctx, productID)
	if err != nil {
		return nil, storeErr(err, "product images")
	}

	var outcomes []RenameOutcome
	for _, img := range images {
		if !img.ImageURL.Valid || img.ImageURL.String == "" {
			continue
		}
		outcome := RenameOutcome{ImageID: img.ID}

		ref, err := supabase.ParseObjectURL(img.ImageURL.String)
		if err != nil {
			outcome.Err = apperrors.Wrap(apperrors.KindInvalidInput, "unparseable image URL", err)
			outcomes = append(outcomes, outcome)
			continue
		}
		outcome.OldPath = ref.Path

		imageType := models.ImageTypeFront
		if img.ImageType.Valid && img.ImageType.String != "" {
			imageType = img.ImageType.String
		}
		expected := naming.ImageFileName(shop.Slug, product.Name, img.TextileColorName.String, imageType, ref.Ext())
		if ref.Base() == expected {
			outcome.Skipped = true
			outcomes = append(outcomes, outcome)
			continue
		}

		dest := ref.Sibling(expected)
		outcome.NewPath = dest.Path

		newURL, repointed, err := s.moveObject(s.images, ref, dest)
		if err != nil {
			outcome.Err = err
			outcomes = append(outcomes, outcome)
			continue
		}
		outcome.Repointed = repointed

		if err := s.store.UpdateProductImageURLs(ctx, img.ID, sql.NullString{String: newURL, Valid: true}, sql.NullString{}); err != nil {
			outcome.Err = apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to repoint image row", err)
			outcomes = append(outcomes, outcome)
			continue
		}

		s.deleteIfUnreferenced(ctx, s.images, img.ImageURL.String, ref)
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// RenamePrintFile re-derives the print-ready filename of one attributed
// asset in the print bucket and moves it there.
func (s *AssetService) RenamePrintFile(ctx context.Context, imageID, productID uuid.UUID) (*RenameOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	mu := s.productLock(productID)
	mu.Lock()
	defer mu.Unlock()

	img, err := s.store.GetProductImage(ctx, imageID)
	if err != nil {
		return nil, storeErr(err, "product image")
	}
	if img.ProductID != productID {
		return nil, apperrors.New(apperrors.KindInvalidInput, "image does not belong to this product")
	}
	if !img.PrintFileURL.Valid || img.PrintFileURL.String == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "image has no print file URL")
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, storeErr(err, "product")
	}
	shop, err := s.store.GetShop(ctx, product.ShopID)
	if err != nil {
		return nil, storeErr(err, "shop")
	}

	ref, err := supabase.ParseObjectURL(img.PrintFileURL.String)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "print file URL is not a storage object URL", err)
	}

	color := naming.DefaultFallback
	if img.TextileColorName.Valid {
		color = img.TextileColorName.String
	}
	position := models.ImageTypeFront
	if img.ImageType.Valid && img.ImageType.String != "" {
		position = img.ImageType.String
	}

	outcome := &RenameOutcome{ImageID: img.ID, OldPath: ref.Path}
	expected := naming.PrintFileName(shop.Slug, product.Name, color, position, ref.Ext())
	if ref.Base() == expected {
		outcome.Skipped = true
		return outcome, nil
	}

	dest := ref.Sibling(expected)
	outcome.NewPath = dest.Path

	newURL, repointed, err := s.moveObject(s.prints, ref, dest)
	if err != nil {
		return nil, err
	}
	outcome.Repointed = repointed

	if err := s.store.UpdateProductImageURLs(ctx, img.ID, sql.NullString{}, sql.NullString{String: newURL, Valid: true}); err != nil {
		return nil, apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to repoint print file row", err)
	}

	s.deleteIfUnreferenced(ctx, s.prints, img.PrintFileURL.String, ref)
	return outcome, nil
}

// moveObject copies src to dest via download/upload, unless dest already
// exists, in which case only the URL is derived (repointed=true). The source
// is not deleted here; callers gate deletion on the reference count.
func (s *AssetService) moveObject(bucket ObjectStore, src, dest supabase.ObjectRef) (string, bool, error) {
	exists, err := bucket.Exists(dest.Path)
	if err != nil {
		return "", false, apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to check destination", err)
	}
	if exists {
		return bucket.PublicURL(dest.Path), true, nil
	}

	data, err := bucket.Download(src.Path)
	if err != nil {
		return "", false, apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to download object", err)
	}
	url, err := bucket.Upload(dest.Path, data, http.DetectContentType(data))
	if err != nil {
		return "", false, apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to upload object", err)
	}
	return url, false, nil
}

// deleteIfUnreferenced removes the old object only when no row still points
// at its URL. Rows can share one physical file after attribution fan-out.
func (s *AssetService) deleteIfUnreferenced(ctx context.Context, bucket ObjectStore, oldURL string, ref supabase.ObjectRef) {
	count, err := s.store.CountImagesByURL(ctx, oldURL)
	if err != nil {
		log.Printf("Rename: failed to count references for %s: %v", ref.Path, err)
		return
	}
	if count > 0 {
		return
	}
	if err := bucket.Delete(ref.Path); err != nil {
		log.Printf("Rename: failed to delete old object %s: %v", ref.Path, err)
	}
}
