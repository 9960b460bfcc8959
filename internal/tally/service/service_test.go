package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/internal/tally/store/drivers/sqlite"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("service-test-secret")

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newServices(t *testing.T) (*AccountService, *FinanceService) {
	t.Helper()

	st := newTestStore(t)
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	return &AccountService{Store: st, Signer: signer, Issuer: "tally", TokenTTL: jwtx.AccessTokenTTL},
		&FinanceService{Store: st}
}

func f(v float64) *float64 { return &v }

// failingStore fails every call, standing in for an unreachable database.
type failingStore struct{ err error }

func (s failingStore) Users() store.Users             { return failingUsers(s) }
func (s failingStore) ApplyMigrations() error         { return s.err }
func (s failingStore) Close() error                   { return nil }
func (s failingStore) Ping(ctx context.Context) error { return s.err }

type failingUsers struct{ err error }

func (u failingUsers) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return domain.User{}, u.err
}
func (u failingUsers) CreateUser(ctx context.Context, user domain.User) error { return u.err }
func (u failingUsers) SaveUser(ctx context.Context, user domain.User) error   { return u.err }
