package shopify_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schoolmerch-backend/internal/apperrors"
	"schoolmerch-backend/internal/models"
	"schoolmerch-backend/internal/shopify"
)

func sizeRow(name, add string) models.ProductVariant {
	return models.ProductVariant{Name: name, AdditionalPrice: add}
}

func colorRow(color, add string) models.ProductVariant {
	return models.ProductVariant{
		Name:            "Standard",
		ColorName:       sql.NullString{String: color, Valid: true},
		AdditionalPrice: add,
	}
}

func TestToProductInput_BothAxes(t *testing.T) {
	product := &models.Product{Name: "Hoodie Classic", Price: "20.00"}
	rows := []models.ProductVariant{
		sizeRow("S", "0"),
		sizeRow("M", "0"),
		colorRow("Rot", "0.50"),
		colorRow("Blau", "0.00"),
	}

	input, err := shopify.ToProductInput(product, rows, shopify.ExportMeta{})
	require.NoError(t, err)

	require.Len(t, input.Options, 2)
	assert.Equal(t, shopify.OptionSize, input.Options[0].Name)
	assert.Equal(t, []string{"S", "M"}, input.Options[0].Values)
	assert.Equal(t, shopify.OptionColor, input.Options[1].Name)
	assert.Equal(t, []string{"Rot", "Blau"}, input.Options[1].Values)

	require.Len(t, input.Variants, 4)
	prices := []string{
		input.Variants[0].Price,
		input.Variants[1].Price,
		input.Variants[2].Price,
		input.Variants[3].Price,
	}
	assert.Equal(t, []string{"20.50", "20.00", "20.50", "20.00"}, prices)
	assert.Equal(t, []string{"S", "Rot"}, input.Variants[0].Options)
	assert.Equal(t, []string{"M", "Blau"}, input.Variants[3].Options)
}

func TestToProductInput_ColorsOnly(t *testing.T) {
	product := &models.Product{Name: "Cap", Price: "12.00"}
	rows := []models.ProductVariant{
		colorRow("Rot", "0.50"),
		colorRow("Blau", "0"),
	}

	input, err := shopify.ToProductInput(product, rows, shopify.ExportMeta{})
	require.NoError(t, err)

	require.Len(t, input.Options, 1)
	assert.Equal(t, shopify.OptionColor, input.Options[0].Name)
	require.Len(t, input.Variants, 2)
	assert.Equal(t, "12.50", input.Variants[0].Price)
	assert.Equal(t, "12.00", input.Variants[1].Price)
}

func TestToProductInput_SizesOnly(t *testing.T) {
	product := &models.Product{Name: "Shirt", Price: "15.00"}
	rows := []models.ProductVariant{
		sizeRow("S", "0"),
		sizeRow("XL", "1.00"),
	}

	input, err := shopify.ToProductInput(product, rows, shopify.ExportMeta{})
	require.NoError(t, err)

	require.Len(t, input.Options, 1)
	assert.Equal(t, shopify.OptionSize, input.Options[0].Name)
	require.Len(t, input.Variants, 2)
	assert.Equal(t, "15.00", input.Variants[0].Price)
	assert.Equal(t, "16.00", input.Variants[1].Price)
}

func TestToProductInput_NoAxes(t *testing.T) {
	product := &models.Product{Name: "Mug", Price: "8.90"}

	input, err := shopify.ToProductInput(product, nil, shopify.ExportMeta{})
	require.NoError(t, err)

	assert.Empty(t, input.Options)
	require.Len(t, input.Variants, 1)
	assert.Equal(t, "8.90", input.Variants[0].Price)
	assert.Empty(t, input.Variants[0].Options)
}

func TestToProductInput_DedupesFirstSeen(t *testing.T) {
	product := &models.Product{Name: "Shirt", Price: "15.00"}
	rows := []models.ProductVariant{
		sizeRow("S", "0"),
		sizeRow("S", "9.99"),
		colorRow("Rot", "0.50"),
		colorRow("Rot", "7.77"),
	}

	input, err := shopify.ToProductInput(product, rows, shopify.ExportMeta{})
	require.NoError(t, err)

	assert.Equal(t, []string{"S"}, input.Options[0].Values)
	assert.Equal(t, []string{"Rot"}, input.Options[1].Values)
	require.Len(t, input.Variants, 1)
	// First-seen additional prices apply.
	assert.Equal(t, "15.50", input.Variants[0].Price)
}

func TestToProductInput_SKUPrefersSize(t *testing.T) {
	product := &models.Product{Name: "Shirt", Price: "15.00"}
	sized := sizeRow("S", "0")
	sized.SKU = sql.NullString{String: "SKU-S", Valid: true}
	colored := colorRow("Rot", "0")
	colored.SKU = sql.NullString{String: "SKU-ROT", Valid: true}

	input, err := shopify.ToProductInput(product, []models.ProductVariant{sized, colored}, shopify.ExportMeta{})
	require.NoError(t, err)

	require.Len(t, input.Variants, 1)
	assert.Equal(t, "SKU-S", input.Variants[0].SKU)
}

func TestToProductInput_SKUFallsBackToColor(t *testing.T) {
	product := &models.Product{Name: "Shirt", Price: "15.00"}
	colored := colorRow("Rot", "0")
	colored.SKU = sql.NullString{String: "SKU-ROT", Valid: true}

	input, err := shopify.ToProductInput(product, []models.ProductVariant{sizeRow("S", "0"), colored}, shopify.ExportMeta{})
	require.NoError(t, err)

	require.Len(t, input.Variants, 1)
	assert.Equal(t, "SKU-ROT", input.Variants[0].SKU)
}

func TestToProductInput_CartesianRowsDeriveBothAxes(t *testing.T) {
	product := &models.Product{Name: "Hoodie", Price: "20.00"}
	rows := []models.ProductVariant{
		{Name: "S", ColorName: sql.NullString{String: "Rot", Valid: true}, AdditionalPrice: "0.50"},
		{Name: "S", ColorName: sql.NullString{String: "Blau", Valid: true}, AdditionalPrice: "0"},
		{Name: "M", ColorName: sql.NullString{String: "Rot", Valid: true}, AdditionalPrice: "0.50"},
		{Name: "M", ColorName: sql.NullString{String: "Blau", Valid: true}, AdditionalPrice: "0"},
	}

	input, err := shopify.ToProductInput(product, rows, shopify.ExportMeta{})
	require.NoError(t, err)

	require.Len(t, input.Options, 2)
	assert.Equal(t, []string{"S", "M"}, input.Options[0].Values)
	assert.Equal(t, []string{"Rot", "Blau"}, input.Options[1].Values)
	require.Len(t, input.Variants, 4)
	assert.Equal(t, "20.50", input.Variants[0].Price)
	assert.Equal(t, "20.00", input.Variants[1].Price)
}

func TestToProductInput_InvalidBasePrice(t *testing.T) {
	product := &models.Product{Name: "Shirt", Price: "free"}
	_, err := shopify.ToProductInput(product, nil, shopify.ExportMeta{})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

func TestToProductInput_MetaCarriedThrough(t *testing.T) {
	product := &models.Product{Name: "Shirt", Price: "15.00"}
	input, err := shopify.ToProductInput(product, nil, shopify.ExportMeta{
		Description: "<p>Soft</p>",
		Vendor:      "Gym West",
		Tags:        []string{"school", "merch"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Shirt", input.Title)
	assert.Equal(t, "<p>Soft</p>", input.DescriptionHTML)
	assert.Equal(t, "Gym West", input.Vendor)
	assert.Equal(t, []string{"school", "merch"}, input.Tags)
}
