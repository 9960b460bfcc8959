package tallysdk

import (
	"context"
	"sync"
)

// Session is a logged-in user. Finance calls are made on behalf of its
// username and carry its token.
type Session struct {
	client *SDKClient

	mu       sync.RWMutex
	username string
	token    string
}

// NewSession creates a session from an existing token, e.g. one kept by the
// caller from an earlier login.
func (c *SDKClient) NewSession(username, token string) *Session {
	return &Session{client: c, username: username, token: token}
}

// Username returns the account the session acts for.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Token returns the bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken swaps the bearer token, e.g. after logging in again.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) request(in FinanceInput) FinanceRequest {
	return FinanceRequest{
		Username: s.Username(),
		Month:    in.Month,
		Income:   in.Income,
		Expenses: in.Expenses,
		Savings:  in.Savings,
	}
}

// AddFinance creates an entry for the session's user.
func (s *Session) AddFinance(ctx context.Context, in FinanceInput) (*MessageResponse, error) {
	return s.client.addFinance(ctx, s.request(in), s.Token())
}

// GetFinanceData lists the session user's entries.
func (s *Session) GetFinanceData(ctx context.Context) ([]FinanceEntry, error) {
	return s.client.getFinanceData(ctx, s.Username(), s.Token())
}

// UpdateFinance replaces an entry of the session's user.
func (s *Session) UpdateFinance(ctx context.Context, in FinanceInput) (*MessageResponse, error) {
	return s.client.updateFinance(ctx, s.request(in), s.Token())
}

// DeleteFinance removes the session user's entries for month.
func (s *Session) DeleteFinance(ctx context.Context, month string) (*MessageResponse, error) {
	return s.client.deleteFinance(ctx, DeleteFinanceRequest{Username: s.Username(), Month: month}, s.Token())
}
