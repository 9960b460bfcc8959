package domain

// FinanceEntry is one month of a user's figures. It has no identity of its
// own; month is unique within the owning user.
type FinanceEntry struct {
	Month    string
	Income   float64
	Expenses float64
	Savings  float64
}

// DeriveSavings is the savings value used when none (or zero) is supplied.
func DeriveSavings(income, expenses float64) float64 {
	return income - expenses
}
