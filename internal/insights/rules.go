package insights

import "fmt"

// The rule list is closed and ordered; output order follows list order.
var rules = []rule{
	savingsRateRule{},
	topCategoryRule{},
	budgetAlertRule{},
	deficitRule{},
	diversificationRule{},
}

type rule interface {
	apply(Snapshot) []Insight
}

// Generate runs every rule against the snapshot in fixed order.
func Generate(s Snapshot) []Insight {
	var out []Insight
	for _, r := range rules {
		out = append(out, r.apply(s)...)
	}
	return out
}

// savingsRateRule always yields exactly one insight, classified by the
// 10% and 20% savings-rate bands.
type savingsRateRule struct{}

func (savingsRateRule) apply(s Snapshot) []Insight {
	switch {
	case s.SavingsRate < 10:
		return []Insight{{
			Type:    "warning",
			Title:   "Low Savings Rate",
			Message: fmt.Sprintf("Your current savings rate is %.1f%%. Financial experts recommend saving at least 20%% of your income. Consider reducing discretionary spending to increase your savings.", s.SavingsRate),
			Icon:    "⚠️",
		}}
	case s.SavingsRate >= 20:
		return []Insight{{
			Type:    "success",
			Title:   "Excellent Savings!",
			Message: fmt.Sprintf("Great job! You're saving %.1f%% of your income, which exceeds the recommended 20%%. Keep up the good work!", s.SavingsRate),
			Icon:    "🎉",
		}}
	default:
		return []Insight{{
			Type:    "info",
			Title:   "Good Savings Progress",
			Message: fmt.Sprintf("You're saving %.1f%% of your income. Try to reach the 20%% goal for optimal financial health.", s.SavingsRate),
			Icon:    "💡",
		}}
	}
}

type topCategoryRule struct{}

func (topCategoryRule) apply(s Snapshot) []Insight {
	if len(s.TopCategories) == 0 {
		return nil
	}
	top := s.TopCategories[0]
	return []Insight{{
		Type:    "info",
		Title:   "Highest Spending Category",
		Message: fmt.Sprintf("Your biggest expense is %s at $%s this month. Review if this aligns with your priorities.", top.Category, top.Amount),
		Icon:    "📊",
	}}
}

// budgetAlertRule surfaces at most the first two alerts.
type budgetAlertRule struct{}

func (budgetAlertRule) apply(s Snapshot) []Insight {
	alerts := s.BudgetAlerts
	if len(alerts) > 2 {
		alerts = alerts[:2]
	}
	var out []Insight
	for _, a := range alerts {
		out = append(out, Insight{
			Type:    "warning",
			Title:   fmt.Sprintf("%s Budget Alert", a.Category),
			Message: fmt.Sprintf("You've used %.1f%% of your %s budget ($%s / $%s). Consider reducing spending in this category.", a.Percentage, a.Category, a.Spent, a.Limit),
			Icon:    "🚨",
		})
	}
	return out
}

type deficitRule struct{}

func (deficitRule) apply(s Snapshot) []Insight {
	if !s.Expenses.GreaterThan(s.Income) {
		return nil
	}
	deficit := s.Expenses.Sub(s.Income)
	return []Insight{{
		Type:    "warning",
		Title:   "Spending Exceeds Income",
		Message: fmt.Sprintf("You're spending $%s more than you earn this month. This is unsustainable. Review your expenses and create a budget to get back on track.", deficit),
		Icon:    "⚠️",
	}}
}

type diversificationRule struct{}

func (diversificationRule) apply(s Snapshot) []Insight {
	if len(s.TopCategories) == 0 {
		return nil
	}
	return []Insight{{
		Type:    "tip",
		Title:   "Expense Diversification",
		Message: "Track all your expenses to get a complete picture of your spending habits. The more detailed your tracking, the better insights you'll receive.",
		Icon:    "💼",
	}}
}
