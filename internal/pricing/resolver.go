package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"schoolmerch-backend/internal/apperrors"
	"schoolmerch-backend/internal/models"
)

// Tier thresholds for print-method volume pricing.
const (
	TierQty50  = 50
	TierQty100 = 100
)

// ResolveInput carries everything the resolver needs. PrintCosts holds one
// entry per selected print position; the same method appearing twice means
// two positions are printed with it and it is charged twice.
type ResolveInput struct {
	Textile       *models.Textile
	OverridePrice *models.TextilePrice
	PrintCosts    []models.PrintMethodCost
	HandlingCost  *models.HandlingCost
	Quantity      int
	Margin        string
	Sponsoring    string
}

// Result keeps full precision; rounding to two digits happens only when the
// value is taken for persistence via FinalString.
type Result struct {
	Final     decimal.Decimal
	Breakdown Breakdown
}

type Breakdown struct {
	Base       decimal.Decimal
	PrintTotal decimal.Decimal
	Handling   decimal.Decimal
	Margin     decimal.Decimal
	Sponsoring decimal.Decimal
}

// FinalString returns the per-unit price rounded to two digits.
func (r Result) FinalString() string {
	return r.Final.Round(2).StringFixed(2)
}

// ResolveFinalPrice combines base price, per-position print costs (with
// volume tiers) and the handling cost into the final per-unit price.
//
// The handling cost is a flat addend to the per-unit price. That matches the
// observed production behavior; do not redistribute it per order quantity
// without a product decision.
func ResolveFinalPrice(in ResolveInput) (Result, error) {
	if in.Textile == nil {
		return Result{}, apperrors.New(apperrors.KindInvalidInput, "textile is required")
	}

	base, err := parseCost(in.Textile.BasePrice, "base_price")
	if err != nil {
		return Result{}, err
	}
	if in.OverridePrice != nil && in.OverridePrice.Active {
		base, err = parseCost(in.OverridePrice.Price, "override_price")
		if err != nil {
			return Result{}, err
		}
	}

	printTotal := decimal.Zero
	for _, pc := range in.PrintCosts {
		if !pc.Active {
			continue
		}
		unit, err := tierCost(pc, in.Quantity)
		if err != nil {
			return Result{}, err
		}
		printTotal = printTotal.Add(unit)
	}

	handling := decimal.Zero
	if in.HandlingCost != nil && in.HandlingCost.Active {
		handling, err = parseCost(in.HandlingCost.Cost, "handling_cost")
		if err != nil {
			return Result{}, err
		}
	}

	// Margin and sponsoring are the only values that default to zero when
	// missing or unparseable.
	margin := parseOrZero(in.Margin)
	sponsoring := parseOrZero(in.Sponsoring)

	final := base.Add(printTotal).Add(handling).Add(margin).Sub(sponsoring)

	return Result{
		Final: final,
		Breakdown: Breakdown{
			Base:       base,
			PrintTotal: printTotal,
			Handling:   handling,
			Margin:     margin,
			Sponsoring: sponsoring,
		},
	}, nil
}

// tierCost picks the applicable per-unit cost for the order quantity. An
// absent tier means no discount at that tier, not zero cost.
func tierCost(pc models.PrintMethodCost, quantity int) (decimal.Decimal, error) {
	if quantity >= TierQty100 && pc.Cost100Units.Valid && pc.Cost100Units.String != "" {
		return parseCost(pc.Cost100Units.String, "cost_100_units")
	}
	if quantity >= TierQty50 && pc.Cost50Units.Valid && pc.Cost50Units.String != "" {
		return parseCost(pc.Cost50Units.String, "cost_50_units")
	}
	return parseCost(pc.CostPerUnit, "cost_per_unit")
}

func parseCost(value, field string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, apperrors.InvalidField(field, "cost value is empty")
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apperrors.InvalidField(field, "cost value is not a number: "+value)
	}
	return d, nil
}

func parseOrZero(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ActiveTextilePrice returns the newest active override, or nil. More than
// one active row is a data-quality condition; it must not crash resolution.
func ActiveTextilePrice(prices []models.TextilePrice) *models.TextilePrice {
	var active []models.TextilePrice
	for _, p := range prices {
		if p.Active {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return &active[0]
}

// ActiveHandlingCost returns the newest active handling cost, or nil.
func ActiveHandlingCost(costs []models.HandlingCost) *models.HandlingCost {
	var active []models.HandlingCost
	for _, c := range costs {
		if c.Active {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return nil
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return &active[0]
}
