package core

import (
	"strings"
	"time"
)

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"

	TxIncome   TransactionType = "income"
	TxExpense  TransactionType = "expense"
	TxTransfer TransactionType = "transfer"

	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"

	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"

	AssetStock      AssetType = "stock"
	AssetETF        AssetType = "etf"
	AssetCrypto     AssetType = "crypto"
	AssetBond       AssetType = "bond"
	AssetMutualFund AssetType = "mutual_fund"

	StatusOK       BudgetStatus = "ok"
	StatusWarning  BudgetStatus = "warning"
	StatusExceeded BudgetStatus = "exceeded"
)

type (
	AccountType     string
	TransactionType string
	CategoryType    string
	BudgetPeriod    string
	AssetType       string
	BudgetStatus    string

	// Account owns a balance and, exclusively, its transactions. The
	// balance is mutated only by the ledger.
	Account struct {
		ID        string      `json:"id"`
		UserID    string      `json:"user_id"`
		Name      string      `json:"account_name"`
		Type      AccountType `json:"account_type"`
		Balance   Money       `json:"balance"`
		Currency  string      `json:"currency"`
		CreatedAt time.Time   `json:"created_at"`
		UpdatedAt time.Time   `json:"updated_at"`
	}

	// Transaction is a single money movement against an account. Amount is
	// always a positive magnitude; Type decides the sign of the balance
	// adjustment.
	Transaction struct {
		ID          string          `json:"id"`
		UserID      string          `json:"user_id"`
		AccountID   string          `json:"account_id"`
		CategoryID  string          `json:"category_id,omitempty"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Merchant    string          `json:"merchant,omitempty"`
		Type        TransactionType `json:"transaction_type"`
		Date        time.Time       `json:"transaction_date"`
		Tags        []string        `json:"tags,omitempty"`
		Notes       string          `json:"notes,omitempty"`
		CreatedAt   time.Time       `json:"created_at"`
		UpdatedAt   time.Time       `json:"updated_at"`
	}

	// Category labels transactions. System categories (empty UserID,
	// IsSystem true) are visible to every user; user categories are
	// private.
	Category struct {
		ID        string       `json:"id"`
		UserID    string       `json:"user_id,omitempty"`
		Name      string       `json:"name"`
		Type      CategoryType `json:"category_type"`
		Icon      string       `json:"icon,omitempty"`
		Color     string       `json:"color,omitempty"`
		IsSystem  bool         `json:"is_system"`
		CreatedAt time.Time    `json:"created_at"`
		UpdatedAt time.Time    `json:"updated_at"`
	}

	// Budget is pure policy: a spending cap for one category over a
	// rolling period. Spend against it is always computed on read.
	Budget struct {
		ID             string       `json:"id"`
		UserID         string       `json:"user_id"`
		CategoryID     string       `json:"category_id"`
		Amount         Money        `json:"amount"`
		Period         BudgetPeriod `json:"period"`
		AlertThreshold float64      `json:"alert_threshold"`
		StartDate      time.Time    `json:"start_date"`
		CreatedAt      time.Time    `json:"created_at"`
		UpdatedAt      time.Time    `json:"updated_at"`
	}

	// Investment is a manually priced position. CurrentPrice is externally
	// supplied; nil means the position is valued at cost.
	Investment struct {
		ID            string    `json:"id"`
		UserID        string    `json:"user_id"`
		AssetType     AssetType `json:"asset_type"`
		Symbol        string    `json:"symbol"`
		Quantity      Quantity  `json:"quantity"`
		PurchasePrice Money     `json:"purchase_price"`
		CurrentPrice  *Money    `json:"current_price,omitempty"`
		PurchaseDate  time.Time `json:"purchase_date"`
		CreatedAt     time.Time `json:"created_at"`
		UpdatedAt     time.Time `json:"updated_at"`
	}

	// SavingsGoal tracks a manually funded target. CurrentAmount is never
	// derived from transactions.
	SavingsGoal struct {
		ID            string     `json:"id"`
		UserID        string     `json:"user_id"`
		Name          string     `json:"goal_name"`
		TargetAmount  Money      `json:"target_amount"`
		CurrentAmount Money      `json:"current_amount"`
		Deadline      *time.Time `json:"deadline,omitempty"`
		Icon          string     `json:"icon,omitempty"`
		CreatedAt     time.Time  `json:"created_at"`
		UpdatedAt     time.Time  `json:"updated_at"`
	}

	// TransactionIntent is the caller-supplied shape the ledger turns into
	// a persisted Transaction.
	TransactionIntent struct {
		AccountID   string          `json:"account_id"`
		CategoryID  string          `json:"category_id,omitempty"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Merchant    string          `json:"merchant,omitempty"`
		Type        TransactionType `json:"transaction_type"`
		Date        time.Time       `json:"transaction_date"`
		Tags        []string        `json:"tags,omitempty"`
		Notes       string          `json:"notes,omitempty"`
	}
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment:
		return true
	}
	return false
}

func (t TransactionType) Valid() bool {
	switch t {
	case TxIncome, TxExpense, TxTransfer:
		return true
	}
	return false
}

func (t CategoryType) Valid() bool {
	return t == CategoryIncome || t == CategoryExpense
}

func (p BudgetPeriod) Valid() bool {
	return p == PeriodMonthly || p == PeriodYearly
}

func (t AssetType) Valid() bool {
	switch t {
	case AssetStock, AssetETF, AssetCrypto, AssetBond, AssetMutualFund:
		return true
	}
	return false
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Type.Valid() {
		return ErrInvalidAccountType
	}
	return nil
}

func (i TransactionIntent) Validate() error {
	if strings.TrimSpace(i.AccountID) == "" {
		return ErrNotFound
	}
	if !i.Type.Valid() {
		return ErrInvalidTxType
	}
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(i.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Type.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.CategoryID) == "" {
		return ErrCategoryNotFound
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if !b.Period.Valid() {
		return ErrInvalidPeriod
	}
	if b.AlertThreshold < 0 || b.AlertThreshold > 1 {
		return ErrInvalidThreshold
	}
	if b.StartDate.IsZero() {
		return ErrInvalidPeriod
	}
	return nil
}

func (i Investment) Validate() error {
	if !i.AssetType.Valid() {
		return ErrInvalidAssetType
	}
	if strings.TrimSpace(i.Symbol) == "" {
		return ErrEmptySymbol
	}
	if !i.Quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	if err := i.PurchasePrice.Validate(); err != nil {
		return err
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	if g.CurrentAmount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
