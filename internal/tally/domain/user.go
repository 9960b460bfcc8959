package domain

import "time"

type User struct {
	ID             string
	Username       string
	PasswordHash   string // bcrypt encoded
	FinanceEntries []FinanceEntry
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EntryIndex returns the position of the first entry for month, or -1.
func (u *User) EntryIndex(month string) int {
	for i, e := range u.FinanceEntries {
		if e.Month == month {
			return i
		}
	}
	return -1
}

// RemoveMonth drops every entry for month, keeping the order of the rest,
// and reports how many were removed.
func (u *User) RemoveMonth(month string) int {
	kept := u.FinanceEntries[:0]
	for _, e := range u.FinanceEntries {
		if e.Month != month {
			kept = append(kept, e)
		}
	}
	removed := len(u.FinanceEntries) - len(kept)
	u.FinanceEntries = kept
	return removed
}
