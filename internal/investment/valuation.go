// Package investment values manually priced positions. Valuation is pure
// arithmetic over the position's own fields; no market data is fetched.
package investment

import (
	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

// Valuation is the derived worth of a single position.
type Valuation struct {
	Investment   core.Investment `json:"investment"`
	CostBasis    core.Money      `json:"total_cost"`
	CurrentValue core.Money      `json:"current_value"`
	ProfitLoss   core.Money      `json:"profit_loss"`
	ROI          float64         `json:"roi_percentage"`
}

// AssetTypeSummary totals the positions of one asset type.
type AssetTypeSummary struct {
	Count      int        `json:"count"`
	TotalValue core.Money `json:"total_value"`
}

// Summary aggregates a whole portfolio.
type Summary struct {
	TotalCost       core.Money                          `json:"total_invested"`
	TotalValue      core.Money                          `json:"current_value"`
	TotalProfitLoss core.Money                          `json:"total_profit_loss"`
	ROI             float64                             `json:"roi_percentage"`
	ByAssetType     map[core.AssetType]AssetTypeSummary `json:"investments_by_type"`
	Positions       []Valuation                         `json:"positions"`
}

// Value computes the worth of one position. A position without a current
// price is valued at cost, which pins its profit to zero rather than
// guessing at a market price.
func Value(inv core.Investment) Valuation {
	cost := inv.Quantity.MulPrice(inv.PurchasePrice)

	value := cost
	if inv.CurrentPrice != nil {
		value = inv.Quantity.MulPrice(*inv.CurrentPrice)
	}

	pl := value.Sub(cost)

	return Valuation{
		Investment:   inv,
		CostBasis:    cost,
		CurrentValue: value,
		ProfitLoss:   pl,
		ROI:          pl.PercentOf(cost),
	}
}

// Summarize values every position and totals the portfolio. Totals are
// summed in fixed-point decimal; the portfolio ROI is derived from the
// totals, not averaged across positions.
func Summarize(invs []core.Investment) Summary {
	s := Summary{
		ByAssetType: make(map[core.AssetType]AssetTypeSummary),
		Positions:   make([]Valuation, 0, len(invs)),
	}

	for _, inv := range invs {
		v := Value(inv)
		s.Positions = append(s.Positions, v)
		s.TotalCost = s.TotalCost.Add(v.CostBasis)
		s.TotalValue = s.TotalValue.Add(v.CurrentValue)

		at := s.ByAssetType[inv.AssetType]
		at.Count++
		at.TotalValue = at.TotalValue.Add(v.CurrentValue)
		s.ByAssetType[inv.AssetType] = at
	}

	s.TotalProfitLoss = s.TotalValue.Sub(s.TotalCost)
	s.ROI = s.TotalProfitLoss.PercentOf(s.TotalCost)
	return s
}
