package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// EntryInput carries an add or update request. Nil numbers were absent.
type EntryInput struct {
	Username string
	Month    string
	Income   *float64
	Expenses *float64
	Savings  *float64
}

func (in EntryInput) validate() error {
	if in.Username == "" || in.Month == "" || in.Income == nil || in.Expenses == nil {
		return ErrEntryFieldsRequired
	}
	return nil
}

// requestedSavings is the caller's savings, or the derived value when it
// was left out or sent as zero.
func (in EntryInput) requestedSavings() float64 {
	if in.Savings == nil || *in.Savings == 0 {
		return domain.DeriveSavings(*in.Income, *in.Expenses)
	}
	return *in.Savings
}

type FinanceService struct {
	Store store.Store
}

func (s *FinanceService) loadUser(ctx context.Context, username string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, internal("lookup user", err)
	}
	return user, nil
}

func (s *FinanceService) saveUser(ctx context.Context, user domain.User) error {
	err := s.Store.Users().SaveUser(ctx, user)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return internal("save user", err)
	}
	return nil
}

// AddEntry appends the entry for in.Month. A month can only be added once.
func (s *FinanceService) AddEntry(ctx context.Context, in EntryInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	user, err := s.loadUser(ctx, in.Username)
	if err != nil {
		return err
	}

	if user.EntryIndex(in.Month) >= 0 {
		return ErrMonthAlreadyExists
	}

	user.FinanceEntries = append(user.FinanceEntries, domain.FinanceEntry{
		Month:    in.Month,
		Income:   *in.Income,
		Expenses: *in.Expenses,
		Savings:  in.requestedSavings(),
	})
	if err := s.saveUser(ctx, user); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("finance entry added",
		slog.String("user_id", user.ID),
		slog.String("month", in.Month),
	)
	return nil
}

// GetEntries returns the user's entries in stored order, never nil.
func (s *FinanceService) GetEntries(ctx context.Context, username string) ([]domain.FinanceEntry, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}

	user, err := s.loadUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if user.FinanceEntries == nil {
		return []domain.FinanceEntry{}, nil
	}
	return user.FinanceEntries, nil
}

// UpdateEntry overwrites the entry for in.Month. Savings are derived when
// none (or zero) is given, and also whenever income or expenses change.
func (s *FinanceService) UpdateEntry(ctx context.Context, in EntryInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	user, err := s.loadUser(ctx, in.Username)
	if err != nil {
		return err
	}

	i := user.EntryIndex(in.Month)
	if i < 0 {
		return ErrMonthNotFound
	}
	entry := &user.FinanceEntries[i]

	savings := in.requestedSavings()
	if entry.Income != *in.Income || entry.Expenses != *in.Expenses {
		savings = domain.DeriveSavings(*in.Income, *in.Expenses)
	}

	entry.Income = *in.Income
	entry.Expenses = *in.Expenses
	entry.Savings = savings

	if err := s.saveUser(ctx, user); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("finance entry updated",
		slog.String("user_id", user.ID),
		slog.String("month", in.Month),
	)
	return nil
}

// DeleteEntry removes every entry for month. Deleting a month that has no
// entry still succeeds.
func (s *FinanceService) DeleteEntry(ctx context.Context, username, month string) error {
	if username == "" || month == "" {
		return ErrUsernameMonthRequired
	}

	user, err := s.loadUser(ctx, username)
	if err != nil {
		return err
	}

	removed := user.RemoveMonth(month)
	if err := s.saveUser(ctx, user); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("finance entries deleted",
		slog.String("user_id", user.ID),
		slog.String("month", month),
		slog.Int("removed", removed),
	)
	return nil
}
