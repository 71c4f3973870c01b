package naming

import (
	"fmt"
	"strings"
)

// DefaultFallback is substituted when normalization leaves nothing usable.
const DefaultFallback = "x"

// Normalize converts arbitrary human text into a filesystem and URL safe
// token: lower-cased, every run of characters outside [a-z0-9] collapsed to a
// single underscore, leading and trailing underscores stripped. An empty
// result yields the fallback (DefaultFallback when the fallback itself is
// empty). Deterministic and idempotent.
func Normalize(text, fallback string) string {
	if fallback == "" {
		fallback = DefaultFallback
	}
	if text == "" {
		text = fallback
	}

	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	lastUnderscore := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	token := strings.Trim(b.String(), "_")
	if token == "" {
		return fallback
	}
	return token
}

// ImageFileName derives the canonical preview image filename for one color of
// a product. The name is a pure function of its inputs, which is what makes
// re-running the asset reassignment safe.
func ImageFileName(shopSlug, productName, color, imageType, ext string) string {
	return fmt.Sprintf("%s_%s_%s_%s%s",
		Normalize(shopSlug, "shop"),
		Normalize(productName, "product"),
		Normalize(color, "color"),
		Normalize(imageType, "front"),
		normalizeExt(ext),
	)
}

// PrintFileName derives the canonical print-ready filename for one color and
// print position of a product.
func PrintFileName(shopSlug, productName, color, position, ext string) string {
	return fmt.Sprintf("%s_%s_%s_print_%s%s",
		Normalize(shopSlug, "shop"),
		Normalize(productName, "product"),
		Normalize(color, "color"),
		Normalize(position, "front"),
		normalizeExt(ext),
	)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ".png"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
