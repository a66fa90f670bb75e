package investment

import (
	"encoding/json"
	"testing"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

func position(qty, purchase string, current *string) core.Investment {
	inv := core.Investment{
		AssetType:     core.AssetStock,
		Symbol:        "VTI",
		Quantity:      core.MustQuantity(qty),
		PurchasePrice: core.MustMoney(purchase),
	}
	if current != nil {
		p := core.MustMoney(*current)
		inv.CurrentPrice = &p
	}
	return inv
}

func strptr(s string) *string { return &s }

func TestValue_PricedPosition(t *testing.T) {
	v := Value(position("10", "100.00", strptr("150.00")))

	if v.CostBasis.String() != "1000.00" {
		t.Fatalf("expected cost 1000.00, got %s", v.CostBasis)
	}
	if v.CurrentValue.String() != "1500.00" {
		t.Fatalf("expected value 1500.00, got %s", v.CurrentValue)
	}
	if v.ProfitLoss.String() != "500.00" {
		t.Fatalf("expected P/L 500.00, got %s", v.ProfitLoss)
	}
	if v.ROI != 50.0 {
		t.Fatalf("expected ROI 50.0, got %.2f", v.ROI)
	}
}

func TestValue_UnpricedPositionValuedAtCost(t *testing.T) {
	v := Value(position("3", "250.00", nil))

	if v.CurrentValue.String() != "750.00" {
		t.Fatalf("expected value at cost 750.00, got %s", v.CurrentValue)
	}
	if !v.ProfitLoss.IsZero() || v.ROI != 0 {
		t.Fatalf("expected flat P/L, got %s / %.2f", v.ProfitLoss, v.ROI)
	}
}

func TestValue_LosingPosition(t *testing.T) {
	v := Value(position("10", "100.00", strptr("80.00")))

	if v.ProfitLoss.String() != "-200.00" {
		t.Fatalf("expected P/L -200.00, got %s", v.ProfitLoss)
	}
	if v.ROI != -20.0 {
		t.Fatalf("expected ROI -20.0, got %.2f", v.ROI)
	}
}

func TestValue_FractionalQuantity(t *testing.T) {
	v := Value(position("0.5", "60000.00", strptr("70000.00")))

	if v.CostBasis.String() != "30000.00" {
		t.Fatalf("expected cost 30000.00, got %s", v.CostBasis)
	}
	if v.CurrentValue.String() != "35000.00" {
		t.Fatalf("expected value 35000.00, got %s", v.CurrentValue)
	}
}

func TestSummarize(t *testing.T) {
	crypto := position("1", "500.00", nil)
	crypto.AssetType = core.AssetCrypto

	s := Summarize([]core.Investment{
		position("10", "100.00", strptr("150.00")), // +500
		position("10", "100.00", strptr("80.00")),  // -200
		crypto,                                     // flat
	})

	if len(s.Positions) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(s.Positions))
	}
	if s.TotalCost.String() != "2500.00" {
		t.Fatalf("expected total cost 2500.00, got %s", s.TotalCost)
	}
	if s.TotalValue.String() != "2800.00" {
		t.Fatalf("expected total value 2800.00, got %s", s.TotalValue)
	}
	if s.TotalProfitLoss.String() != "300.00" {
		t.Fatalf("expected total P/L 300.00, got %s", s.TotalProfitLoss)
	}
	if s.ROI != 12.0 {
		t.Fatalf("expected portfolio ROI 12.0, got %.2f", s.ROI)
	}

	stocks := s.ByAssetType[core.AssetStock]
	if stocks.Count != 2 || stocks.TotalValue.String() != "2300.00" {
		t.Fatalf("unexpected stock bucket: %+v", stocks)
	}
	cryptos := s.ByAssetType[core.AssetCrypto]
	if cryptos.Count != 1 || cryptos.TotalValue.String() != "500.00" {
		t.Fatalf("unexpected crypto bucket: %+v", cryptos)
	}
}

func TestFieldNames(t *testing.T) {
	assertKeys := func(t *testing.T, v any, want []string) {
		t.Helper()
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(b, &keys); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		for _, k := range want {
			if _, ok := keys[k]; !ok {
				t.Fatalf("missing field %q in %s", k, b)
			}
		}
	}

	assertKeys(t, Valuation{},
		[]string{"investment", "total_cost", "current_value", "profit_loss", "roi_percentage"})
	assertKeys(t, Summary{},
		[]string{"total_invested", "current_value", "total_profit_loss", "roi_percentage", "investments_by_type", "positions"})
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if !s.TotalCost.IsZero() || !s.TotalValue.IsZero() || s.ROI != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
	if s.Positions == nil || len(s.Positions) != 0 {
		t.Fatal("expected empty, non-nil positions slice")
	}
}
