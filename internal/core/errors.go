package core

import "errors"

var (
	// ErrNotFound covers both an absent entity and an entity owned by a
	// different user. The two cases are deliberately indistinguishable so
	// that existence of other users' records never leaks.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied is raised by Ledger.Apply when a transaction
	// references an account the caller does not own. The HTTP layer maps
	// it to the same 404 as ErrNotFound.
	ErrAccessDenied = errors.New("account not found or access denied")

	// ErrDuplicateBudget enforces the one-budget-per-category-per-user
	// invariant at creation time.
	ErrDuplicateBudget = errors.New("budget already exists for category")

	// ErrCategoryNotFound is returned when a budget references a category
	// the user cannot see.
	ErrCategoryNotFound = errors.New("category not found")

	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyDescription   = errors.New("empty description")
	ErrEmptySymbol        = errors.New("empty symbol")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidTxType      = errors.New("invalid transaction type")
	ErrInvalidCategory    = errors.New("invalid category type")
	ErrInvalidPeriod      = errors.New("invalid budget period")
	ErrInvalidAssetType   = errors.New("invalid asset type")
	ErrInvalidThreshold   = errors.New("alert threshold must be between 0 and 1")
)
