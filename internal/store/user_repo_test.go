package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"veldrith-backend/internal/models"
)

// testStore returns a temp-dir store with an adjustable clock
func testStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s, err := Open(Config{
		Dir:   t.TempDir(),
		Clock: func() time.Time { return now },
	})
	require.NoError(t, err)
	return s, &now
}

func TestCreateAndValidateRoundTrip(t *testing.T) {
	s, _ := testStore(t)
	repo, err := NewUserRepo(s)
	require.NoError(t, err)

	created, err := repo.Create("alice", 10)
	require.NoError(t, err)
	require.Equal(t, "alice", created.Username)
	require.Len(t, created.Password, 4)
	require.Equal(t, s.Now().AddDate(0, 0, 10), created.ExpiresAt)

	user, err := repo.ValidateCredentials("alice", created.Password)
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, user.Role)

	listed := repo.List()
	require.Len(t, listed, 1)
	require.False(t, listed[0].IsExpired)
}

func TestCreateDuplicateUsername(t *testing.T) {
	s, _ := testStore(t)
	repo, err := NewUserRepo(s)
	require.NoError(t, err)

	_, err = repo.Create("alice", 5)
	require.NoError(t, err)

	_, err = repo.Create("alice", 5)
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestCreateRejectsNonPositiveDays(t *testing.T) {
	s, _ := testStore(t)
	repo, err := NewUserRepo(s)
	require.NoError(t, err)

	_, err = repo.Create("alice", 0)
	require.Error(t, err)
	_, err = repo.Create("alice", -3)
	require.Error(t, err)
}

// A wrong password on an expired account must report the password
// error, not the expiry: expiration status is not leaked to callers
// that failed authentication.
func TestValidatePrecedenceOrder(t *testing.T) {
	s, now := testStore(t)
	repo, err := NewUserRepo(s)
	require.NoError(t, err)

	created, err := repo.Create("bob", 1)
	require.NoError(t, err)

	_, err = repo.ValidateCredentials("nobody", "whatever")
	require.ErrorIs(t, err, ErrUserNotFound)

	*now = now.AddDate(0, 0, 2) // bob is now expired

	_, err = repo.ValidateCredentials("bob", "wrong-password")
	require.ErrorIs(t, err, ErrBadPassword)

	_, err = repo.ValidateCredentials("bob", created.Password)
	require.ErrorIs(t, err, ErrAccountExpired)
}

func TestExpiryBoundaryIsExpired(t *testing.T) {
	s, now := testStore(t)
	repo, err := NewUserRepo(s)
	require.NoError(t, err)

	_, err = repo.Create("edge", 1)
	require.NoError(t, err)

	*now = now.AddDate(0, 0, 1) // expiresAt == now exactly

	listed := repo.List()
	require.Len(t, listed, 1)
	require.True(t, listed[0].IsExpired)
}

func TestExpirationScenario(t *testing.T) {
	s, now := testStore(t)
	repo, err := NewUserRepo(s)
	require.NoError(t, err)

	created, err := repo.Create("bob", 1)
	require.NoError(t, err)

	_, err = repo.ValidateCredentials("bob", created.Password)
	require.NoError(t, err)

	*now = now.Add(25 * time.Hour)

	_, err = repo.ValidateCredentials("bob", created.Password)
	require.ErrorIs(t, err, ErrAccountExpired)

	removed, err := repo.SweepExpired()
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.Empty(t, repo.List())
}

func TestSweepIsIdempotentAndSparesAdmins(t *testing.T) {
	s, now := testStore(t)
	repo, err := NewUserRepo(s)
	require.NoError(t, err)

	require.NoError(t, repo.CreateAdmin("root", "supersecret"))
	_, err = repo.Create("shortlived", 1)
	require.NoError(t, err)

	*now = now.AddDate(0, 0, 30)

	removed, err := repo.SweepExpired()
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	removed, err = repo.SweepExpired()
	require.NoError(t, err)
	require.Equal(t, 0, removed)

	listed := repo.List()
	require.Len(t, listed, 1)
	require.Equal(t, models.RoleAdmin, listed[0].Role)
	require.False(t, listed[0].IsExpired)
}

func TestDeleteUser(t *testing.T) {
	s, _ := testStore(t)
	repo, err := NewUserRepo(s)
	require.NoError(t, err)

	_, err = repo.Create("gone", 3)
	require.NoError(t, err)

	require.NoError(t, repo.Delete("gone"))
	require.ErrorIs(t, repo.Delete("gone"), ErrUserNotFound)
}

func TestSetExpirationSkipsAdmins(t *testing.T) {
	s, now := testStore(t)
	repo, err := NewUserRepo(s)
	require.NoError(t, err)

	require.NoError(t, repo.CreateAdmin("root", "supersecret"))
	require.NoError(t, repo.SetExpiration("root", now.AddDate(0, 0, -10)))

	admin, err := repo.Get("root")
	require.NoError(t, err)
	require.Nil(t, admin.ExpiresAt)
}

func TestPersistenceSurvivesReload(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	dir := t.TempDir()

	s, err := Open(Config{Dir: dir, Clock: clock})
	require.NoError(t, err)
	repo, err := NewUserRepo(s)
	require.NoError(t, err)
	created, err := repo.Create("durable", 7)
	require.NoError(t, err)

	// Fresh store over the same directory sees the mutation
	s2, err := Open(Config{Dir: dir, Clock: clock})
	require.NoError(t, err)
	repo2, err := NewUserRepo(s2)
	require.NoError(t, err)

	user, err := repo2.ValidateCredentials("durable", created.Password)
	require.NoError(t, err)
	require.Equal(t, "durable", user.Username)
}
