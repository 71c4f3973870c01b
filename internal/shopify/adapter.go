package shopify

import (
	"github.com/shopspring/decimal"

	"schoolmerch-backend/internal/apperrors"
	"schoolmerch-backend/internal/models"
	"schoolmerch-backend/internal/variants"
)

// Option names on the platform side. German because the storefronts are.
const (
	OptionSize  = "Größe"
	OptionColor = "Farbe"
)

type OptionInput struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type VariantInput struct {
	Options []string `json:"options"`
	Price   string   `json:"price"`
	SKU     string   `json:"sku,omitempty"`
}

// ProductInput is the productCreate submission shape.
type ProductInput struct {
	Title           string         `json:"title"`
	DescriptionHTML string         `json:"descriptionHtml,omitempty"`
	Vendor          string         `json:"vendor,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	Options         []OptionInput  `json:"options,omitempty"`
	Variants        []VariantInput `json:"variants,omitempty"`
}

// ExportMeta is the free-form part of an export request.
type ExportMeta struct {
	Description string
	Vendor      string
	Tags        []string
}

type axis struct {
	values []string
	add    map[string]decimal.Decimal
	sku    map[string]string
}

func newAxis() *axis {
	return &axis{add: map[string]decimal.Decimal{}, sku: map[string]string{}}
}

// record keeps first-seen order and first-seen price/SKU per value.
func (a *axis) record(value, addPrice string, sku optString) error {
	if _, seen := a.add[value]; !seen {
		a.values = append(a.values, value)
		add, err := decimal.NewFromString(addPrice)
		if err != nil {
			return apperrors.InvalidField("additional_price", "is not a valid decimal")
		}
		a.add[value] = add
		if sku.valid && sku.s != "" {
			a.sku[value] = sku.s
		}
	}
	return nil
}

type optString struct {
	s     string
	valid bool
}

// ToProductInput converts a product and its variant rows into the platform
// submission shape. Pure: no network, no store access.
//
// The size axis is taken from variant names, the color axis from color
// names. A name of "Standard" marks a colors-only product and does not
// produce a size axis.
func ToProductInput(product *models.Product, rows []models.ProductVariant, meta ExportMeta) (*ProductInput, error) {
	base, err := decimal.NewFromString(product.Price)
	if err != nil {
		return nil, apperrors.InvalidField("price", "is not a valid decimal")
	}

	sizes := newAxis()
	colors := newAxis()
	for _, row := range rows {
		hasColor := row.ColorName.Valid && row.ColorName.String != ""
		hasSize := row.Name != "" && row.Name != variants.StandardName

		if hasSize && !hasColor {
			if err := sizes.record(row.Name, row.AdditionalPrice, optString{row.SKU.String, row.SKU.Valid}); err != nil {
				return nil, err
			}
		}
		if hasColor {
			if err := colors.record(row.ColorName.String, row.AdditionalPrice, optString{row.SKU.String, row.SKU.Valid}); err != nil {
				return nil, err
			}
			// Cartesian rows carry the size on the name. Price additions on
			// such rows belong to the color axis; the size contributes zero
			// unless a size-only row says otherwise.
			if hasSize {
				if err := sizes.record(row.Name, "0", optString{}); err != nil {
					return nil, err
				}
			}
		}
	}

	input := &ProductInput{
		Title:           product.Name,
		DescriptionHTML: meta.Description,
		Vendor:          meta.Vendor,
		Tags:            meta.Tags,
	}
	if len(sizes.values) > 0 {
		input.Options = append(input.Options, OptionInput{Name: OptionSize, Values: sizes.values})
	}
	if len(colors.values) > 0 {
		input.Options = append(input.Options, OptionInput{Name: OptionColor, Values: colors.values})
	}

	switch {
	case len(sizes.values) > 0 && len(colors.values) > 0:
		for _, size := range sizes.values {
			for _, color := range colors.values {
				price := base.Add(sizes.add[size]).Add(colors.add[color])
				v := VariantInput{
					Options: []string{size, color},
					Price:   price.StringFixed(2),
				}
				if sku, ok := sizes.sku[size]; ok {
					v.SKU = sku
				} else if sku, ok := colors.sku[color]; ok {
					v.SKU = sku
				}
				input.Variants = append(input.Variants, v)
			}
		}
	case len(sizes.values) > 0:
		for _, size := range sizes.values {
			input.Variants = append(input.Variants, VariantInput{
				Options: []string{size},
				Price:   base.Add(sizes.add[size]).StringFixed(2),
				SKU:     sizes.sku[size],
			})
		}
	case len(colors.values) > 0:
		for _, color := range colors.values {
			input.Variants = append(input.Variants, VariantInput{
				Options: []string{color},
				Price:   base.Add(colors.add[color]).StringFixed(2),
				SKU:     colors.sku[color],
			})
		}
	default:
		input.Variants = append(input.Variants, VariantInput{Price: base.StringFixed(2)})
	}

	return input, nil
}
