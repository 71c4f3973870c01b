package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"schoolmerch-backend/internal/naming"
)

func TestNormalize_CollapsesRuns(t *testing.T) {
	assert.Equal(t, "gr_e_xl", naming.Normalize("Größe XL!", "x"))
	assert.Equal(t, "rot_blau", naming.Normalize("  Rot/Blau  ", "x"))
	assert.Equal(t, "hoodie_2024", naming.Normalize("Hoodie --- 2024", "x"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Größe XL!",
		"  Rot/Blau  ",
		"already_normal",
		"UPPER CASE",
		"",
		"!!!",
	}
	for _, in := range inputs {
		once := naming.Normalize(in, "x")
		assert.Equal(t, once, naming.Normalize(once, "x"), "input %q", in)
	}
}

func TestNormalize_Fallback(t *testing.T) {
	assert.Equal(t, "x", naming.Normalize("", "x"))
	assert.Equal(t, "x", naming.Normalize("!!!", "x"))
	assert.Equal(t, "shop", naming.Normalize("???", "shop"))
	assert.Equal(t, naming.DefaultFallback, naming.Normalize("", ""))
}

func TestImageFileName(t *testing.T) {
	name := naming.ImageFileName("gym-west", "Hoodie Classic", "Rot", "front", ".png")
	assert.Equal(t, "gym_west_hoodie_classic_rot_front.png", name)

	// Deterministic: same inputs, same name.
	again := naming.ImageFileName("gym-west", "Hoodie Classic", "Rot", "front", ".png")
	assert.Equal(t, name, again)
}

func TestImageFileName_ExtensionDefaults(t *testing.T) {
	assert.Equal(t, "s_p_c_front.png", naming.ImageFileName("s", "p", "c", "front", ""))
	assert.Equal(t, "s_p_c_front.jpg", naming.ImageFileName("s", "p", "c", "front", "jpg"))
	assert.Equal(t, "s_p_c_front.jpg", naming.ImageFileName("s", "p", "c", "front", ".JPG"))
}

func TestPrintFileName(t *testing.T) {
	name := naming.PrintFileName("gym-west", "Hoodie Classic", "Rot", "back", ".pdf")
	assert.Equal(t, "gym_west_hoodie_classic_rot_print_back.pdf", name)
}
