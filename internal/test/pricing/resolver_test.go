package pricing_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schoolmerch-backend/internal/apperrors"
	"schoolmerch-backend/internal/models"
	"schoolmerch-backend/internal/pricing"
)

func textile(basePrice string) *models.Textile {
	return &models.Textile{Name: "Hoodie", BasePrice: basePrice}
}

func TestResolveFinalPrice_BasePlusPrintPlusHandling(t *testing.T) {
	result, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile: textile("10.00"),
		PrintCosts: []models.PrintMethodCost{
			{Method: "DTF", CostPerUnit: "2.50", Active: true},
		},
		HandlingCost: &models.HandlingCost{Cost: "1.00", Active: true},
		Quantity:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, "13.50", result.FinalString())
	assert.Equal(t, "10", result.Breakdown.Base.String())
	assert.Equal(t, "2.5", result.Breakdown.PrintTotal.String())
	assert.Equal(t, "1", result.Breakdown.Handling.String())
}

func TestResolveFinalPrice_Tier50(t *testing.T) {
	result, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile: textile("10.00"),
		PrintCosts: []models.PrintMethodCost{
			{
				Method:      "DTF",
				CostPerUnit: "2.50",
				Cost50Units: sql.NullString{String: "1.80", Valid: true},
				Active:      true,
			},
		},
		Quantity: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, "11.80", result.FinalString())
}

func TestResolveFinalPrice_Tier100PreferredOver50(t *testing.T) {
	result, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile: textile("10.00"),
		PrintCosts: []models.PrintMethodCost{
			{
				Method:       "DTF",
				CostPerUnit:  "2.50",
				Cost50Units:  sql.NullString{String: "1.80", Valid: true},
				Cost100Units: sql.NullString{String: "1.20", Valid: true},
				Active:       true,
			},
		},
		Quantity: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, "11.20", result.FinalString())
}

func TestResolveFinalPrice_AbsentTierMeansNoDiscount(t *testing.T) {
	result, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile: textile("10.00"),
		PrintCosts: []models.PrintMethodCost{
			{Method: "DTF", CostPerUnit: "2.50", Active: true},
		},
		Quantity: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, "12.50", result.FinalString())
}

func TestResolveFinalPrice_SameMethodTwiceChargedTwice(t *testing.T) {
	pc := models.PrintMethodCost{Method: "DTF", CostPerUnit: "2.50", Active: true}
	result, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile:    textile("10.00"),
		PrintCosts: []models.PrintMethodCost{pc, pc},
		Quantity:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, "15.00", result.FinalString())
}

func TestResolveFinalPrice_OverridePrice(t *testing.T) {
	result, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile:       textile("10.00"),
		OverridePrice: &models.TextilePrice{Price: "8.00", Active: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "8.00", result.FinalString())
}

func TestResolveFinalPrice_InactiveOverrideIgnored(t *testing.T) {
	result, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile:       textile("10.00"),
		OverridePrice: &models.TextilePrice{Price: "8.00", Active: false},
	})
	require.NoError(t, err)
	assert.Equal(t, "10.00", result.FinalString())
}

func TestResolveFinalPrice_MarginAndSponsoring(t *testing.T) {
	result, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile:    textile("10.00"),
		Margin:     "2.00",
		Sponsoring: "0.50",
	})
	require.NoError(t, err)
	assert.Equal(t, "11.50", result.FinalString())
}

func TestResolveFinalPrice_NonNumericCost(t *testing.T) {
	_, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile: textile("abc"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

func TestResolveFinalPrice_NonNumericPrintCost(t *testing.T) {
	_, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile: textile("10.00"),
		PrintCosts: []models.PrintMethodCost{
			{Method: "DTF", CostPerUnit: "n/a", Active: true},
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

func TestResolveFinalPrice_RoundsOnlyAtFinalString(t *testing.T) {
	result, err := pricing.ResolveFinalPrice(pricing.ResolveInput{
		Textile: textile("10.005"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10.005", result.Final.String())
	assert.Equal(t, "10.01", result.FinalString())
}

func TestActiveTextilePrice_NewestActiveWins(t *testing.T) {
	now := time.Now()
	prices := []models.TextilePrice{
		{Price: "8.00", Active: true, CreatedAt: now.Add(-time.Hour)},
		{Price: "9.00", Active: true, CreatedAt: now},
		{Price: "7.00", Active: false, CreatedAt: now.Add(time.Hour)},
	}
	got := pricing.ActiveTextilePrice(prices)
	require.NotNil(t, got)
	assert.Equal(t, "9.00", got.Price)
}

func TestActiveTextilePrice_NoneActive(t *testing.T) {
	assert.Nil(t, pricing.ActiveTextilePrice([]models.TextilePrice{{Price: "8.00"}}))
	assert.Nil(t, pricing.ActiveTextilePrice(nil))
}

func TestActiveHandlingCost_NewestActiveWins(t *testing.T) {
	now := time.Now()
	costs := []models.HandlingCost{
		{Cost: "1.00", Active: true, CreatedAt: now.Add(-time.Hour)},
		{Cost: "1.50", Active: true, CreatedAt: now},
	}
	got := pricing.ActiveHandlingCost(costs)
	require.NotNil(t, got)
	assert.Equal(t, "1.50", got.Cost)
}
