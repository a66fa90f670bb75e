package core

import (
	"errors"
	"testing"
	"time"
)

func TestAccount_Validate(t *testing.T) {
	valid := Account{Name: "Main Checking", Type: AccountChecking}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	cases := []struct {
		name string
		a    Account
		want error
	}{
		{"empty name", Account{Name: "  ", Type: AccountSavings}, ErrEmptyName},
		{"bad type", Account{Name: "x", Type: "offshore"}, ErrInvalidAccountType},
	}
	for _, tc := range cases {
		if err := tc.a.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestTransactionIntent_Validate(t *testing.T) {
	valid := TransactionIntent{
		AccountID:   "acc-1",
		Amount:      MustMoney("150.00"),
		Description: "Groceries",
		Type:        TxExpense,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	cases := []struct {
		name string
		mod  func(*TransactionIntent)
		want error
	}{
		{"missing account", func(i *TransactionIntent) { i.AccountID = "" }, ErrNotFound},
		{"bad type", func(i *TransactionIntent) { i.Type = "withdrawal" }, ErrInvalidTxType},
		{"zero amount", func(i *TransactionIntent) { i.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(i *TransactionIntent) { i.Amount = MustMoney("-1") }, ErrInvalidAmount},
		{"empty description", func(i *TransactionIntent) { i.Description = " " }, ErrEmptyDescription},
	}
	for _, tc := range cases {
		i := valid
		tc.mod(&i)
		if err := i.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestBudget_Validate(t *testing.T) {
	valid := Budget{
		CategoryID:     "cat-1",
		Amount:         MustMoney("500.00"),
		Period:         PeriodMonthly,
		AlertThreshold: 0.8,
		StartDate:      time.Now(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	cases := []struct {
		name string
		mod  func(*Budget)
		want error
	}{
		{"missing category", func(b *Budget) { b.CategoryID = "" }, ErrCategoryNotFound},
		{"bad period", func(b *Budget) { b.Period = "weekly" }, ErrInvalidPeriod},
		{"threshold above 1", func(b *Budget) { b.AlertThreshold = 1.5 }, ErrInvalidThreshold},
		{"negative threshold", func(b *Budget) { b.AlertThreshold = -0.1 }, ErrInvalidThreshold},
		{"zero start", func(b *Budget) { b.StartDate = time.Time{} }, ErrInvalidPeriod},
	}
	for _, tc := range cases {
		b := valid
		tc.mod(&b)
		if err := b.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestInvestment_Validate(t *testing.T) {
	valid := Investment{
		AssetType:     AssetStock,
		Symbol:        "VTI",
		Quantity:      MustQuantity("10"),
		PurchasePrice: MustMoney("100.00"),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	cases := []struct {
		name string
		mod  func(*Investment)
		want error
	}{
		{"bad asset type", func(i *Investment) { i.AssetType = "nft" }, ErrInvalidAssetType},
		{"empty symbol", func(i *Investment) { i.Symbol = "" }, ErrEmptySymbol},
		{"zero quantity", func(i *Investment) { i.Quantity = Quantity{} }, ErrInvalidQuantity},
		{"zero price", func(i *Investment) { i.PurchasePrice = Money{} }, ErrInvalidAmount},
	}
	for _, tc := range cases {
		i := valid
		tc.mod(&i)
		if err := i.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestSavingsGoal_Validate(t *testing.T) {
	valid := SavingsGoal{
		Name:          "House Down Payment",
		TargetAmount:  MustMoney("50000.00"),
		CurrentAmount: MustMoney("12000.00"),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	// A freshly created goal starts at zero.
	zero := valid
	zero.CurrentAmount = Money{}
	if err := zero.Validate(); err != nil {
		t.Fatalf("expected zero current amount to be valid, got %v", err)
	}

	cases := []struct {
		name string
		mod  func(*SavingsGoal)
		want error
	}{
		{"empty name", func(g *SavingsGoal) { g.Name = "" }, ErrEmptyName},
		{"zero target", func(g *SavingsGoal) { g.TargetAmount = Money{} }, ErrInvalidAmount},
		{"negative current", func(g *SavingsGoal) { g.CurrentAmount = MustMoney("-1") }, ErrInvalidAmount},
	}
	for _, tc := range cases {
		g := valid
		tc.mod(&g)
		if err := g.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}
