package variants_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"schoolmerch-backend/internal/variants"
)

func TestBuild_BothAxes(t *testing.T) {
	got := variants.Build([]string{"Rot", "Blau"}, []string{"S", "M"})
	assert.Len(t, got, 4)

	// Sizes outer, colors inner.
	assert.Equal(t, "S", got[0].Name)
	assert.Equal(t, "Rot", *got[0].ColorName)
	assert.Equal(t, "S", got[1].Name)
	assert.Equal(t, "Blau", *got[1].ColorName)
	assert.Equal(t, "M", got[2].Name)
	assert.Equal(t, "M", got[3].Name)

	// No duplicate (name, color) pairs.
	seen := map[string]bool{}
	for _, v := range got {
		key := fmt.Sprintf("%s|%s", v.Name, *v.ColorName)
		assert.False(t, seen[key], "duplicate pair %s", key)
		seen[key] = true
	}
}

func TestBuild_ColorsOnly(t *testing.T) {
	got := variants.Build([]string{"Rot", "Blau", "Grün"}, nil)
	assert.Len(t, got, 3)
	for _, v := range got {
		assert.Equal(t, variants.StandardName, v.Name)
		assert.NotNil(t, v.ColorName)
	}
	assert.Equal(t, "Rot", *got[0].ColorName)
	assert.Equal(t, "Blau", *got[1].ColorName)
	assert.Equal(t, "Grün", *got[2].ColorName)
}

func TestBuild_SizesOnly(t *testing.T) {
	got := variants.Build(nil, []string{"S", "M", "L"})
	assert.Len(t, got, 3)
	for _, v := range got {
		assert.Nil(t, v.ColorName)
	}
	assert.Equal(t, "S", got[0].Name)
	assert.Equal(t, "M", got[1].Name)
	assert.Equal(t, "L", got[2].Name)
}

func TestBuild_Empty(t *testing.T) {
	got := variants.Build(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuild_DedupesFirstSeen(t *testing.T) {
	got := variants.Build([]string{"Rot", "Rot", "Blau"}, []string{"S", "S"})
	assert.Len(t, got, 2)
	assert.Equal(t, "Rot", *got[0].ColorName)
	assert.Equal(t, "Blau", *got[1].ColorName)
}

func TestBuild_SkipsEmptyValues(t *testing.T) {
	got := variants.Build([]string{"", "Rot"}, nil)
	assert.Len(t, got, 1)
	assert.Equal(t, "Rot", *got[0].ColorName)
}

func TestBuild_ColorPointersAreIndependent(t *testing.T) {
	got := variants.Build([]string{"Rot", "Blau"}, []string{"S"})
	assert.NotEqual(t, *got[0].ColorName, *got[1].ColorName)
}
