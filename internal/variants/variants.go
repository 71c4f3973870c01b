package variants

// StandardName is used when a textile has colors but no sizes.
const StandardName = "Standard"

// Variant is one purchasable combination for a product. ColorName is nil for
// size-only variants.
type Variant struct {
	Name      string
	ColorName *string
}

// Build expands the selected color and size axes into the full variant set:
// sizes x colors when both are present, one Standard variant per color when
// only colors are selected, one colorless variant per size when only sizes
// are selected, and nothing when neither axis is present. Inputs are
// de-duplicated first-seen before expansion so the result never contains a
// duplicate (name, color) pair.
func Build(colors, sizes []string) []Variant {
	colors = dedupe(colors)
	sizes = dedupe(sizes)

	switch {
	case len(sizes) > 0 && len(colors) > 0:
		out := make([]Variant, 0, len(sizes)*len(colors))
		for _, size := range sizes {
			for _, color := range colors {
				c := color
				out = append(out, Variant{Name: size, ColorName: &c})
			}
		}
		return out
	case len(colors) > 0:
		out := make([]Variant, 0, len(colors))
		for _, color := range colors {
			c := color
			out = append(out, Variant{Name: StandardName, ColorName: &c})
		}
		return out
	case len(sizes) > 0:
		out := make([]Variant, 0, len(sizes))
		for _, size := range sizes {
			out = append(out, Variant{Name: size})
		}
		return out
	default:
		return []Variant{}
	}
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
