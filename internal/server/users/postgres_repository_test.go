package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/storeconsole/internal/common"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertUserQuery = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*username,\s*role,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*ON\s+CONFLICT\s*\(username\)\s*DO\s+NOTHING\s*RETURNING\s+id\s*$`

const selectUserQuery = `(?s)^SELECT\s+id,\s*name,\s*username,\s*role,\s*password_hash\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestPostgresCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertUserQuery).
		WithArgs("u-1", "Alice", "alice", "manager", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))

	got, err := repo.Create(context.Background(), &User{ID: "u-1", Name: "Alice", Username: " Alice ", Role: "manager", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, "alice", got.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreate_AssignsID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertUserQuery).
		WithArgs(sqlmock.AnyArg(), "", "bob", "staff", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("generated"))

	got, err := repo.Create(context.Background(), &User{Username: "bob", Role: "staff", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, "generated", got.ID)
}

func TestPostgresCreate_Errors(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(insertUserQuery).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.Create(context.Background(), &User{Username: "alice"})
		require.ErrorContains(t, err, "already exists")
	})

	t.Run("db down", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(insertUserQuery).WillReturnError(errors.New("db down"))

		_, err := repo.Create(context.Background(), &User{Username: "alice"})
		if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})

	t.Run("no username", func(t *testing.T) {
		repo, _, db := newRepoWithMock(t)
		defer db.Close()

		_, err := repo.Create(context.Background(), &User{Username: "  "})
		require.Error(t, err)
	})
}

func TestPostgresGetUserByLogin(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectUserQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username", "role", "password_hash"}).
			AddRow("u-1", "Alice", "alice", "manager", "hash"))

	u, err := repo.GetUserByLogin(context.Background(), "ALICE")
	require.NoError(t, err)
	assert.Equal(t, &User{ID: "u-1", Name: "Alice", Username: "alice", Role: "manager", PasswordHash: "hash"}, u)

	mock.ExpectQuery(selectUserQuery).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetUserByLogin(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectQuery(selectUserQuery).WithArgs("alice").WillReturnError(errors.New("boom"))
	_, err = repo.GetUserByLogin(context.Background(), "alice")
	require.ErrorContains(t, err, "db error")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_UsesGoose(t *testing.T) {
	old := gooseUpContext
	t.Cleanup(func() { gooseUpContext = old })

	var called bool
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		called = true
		assert.Equal(t, ".", dir)
		return nil
	}
	require.NoError(t, RunMigrations(context.Background(), nil))
	assert.True(t, called)

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	require.ErrorContains(t, RunMigrations(context.Background(), nil), "apply migrations")
}

func TestSeed_PostgresDirectory(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectUserQuery).WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username", "role", "password_hash"}).
			AddRow("u-1", "Store Admin", "admin", "admin", "hash"))
	mock.ExpectQuery(selectUserQuery).WithArgs("newbie").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(insertUserQuery).
		WithArgs(sqlmock.AnyArg(), "New", "newbie", "staff", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-2"))

	seed := []SeedUser{
		{Name: "Store Admin", Username: "admin", Role: "admin", Password: "secret"},
		{Name: "New", Username: "newbie", Role: "staff", Password: "pw"},
	}
	require.NoError(t, Seed(context.Background(), repo, seed, 4))
	require.NoError(t, mock.ExpectationsWereMet())
}
