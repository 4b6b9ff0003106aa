package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockGormDB(t)
	return NewGormUserRepository(gormDB), mock, mockDB
}

func TestGormUserRepository_FindByID(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "email", "full_name", "role", "active"}).
			AddRow(int64(1), "owner@example.com", "Office Owner", "admin", true)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(1), 1).
			WillReturnRows(rows)

		user, err := repo.FindByID(context.Background(), 1)

		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, identity.RoleAdmin, user.Role)
		assert.True(t, user.Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for non-existent user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(99), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByID(context.Background(), 99)

		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("normalizes email before lookup", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "email", "full_name", "role", "active"}).
			AddRow(int64(1), "owner@example.com", "Office Owner", "admin", true)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("owner@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "  Owner@Example.COM ")

		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "owner@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for unknown email", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("nobody@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	t.Run("returns true when email is taken", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
			WithArgs("owner@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByEmail(context.Background(), "Owner@Example.com")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when email is free", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByEmail(context.Background(), "nobody@example.com")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_Save(t *testing.T) {
	t.Run("creates user and assigns generated ID", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		user, err := identity.NewUser("owner@example.com", "str0ngpassword", "Office Owner", identity.RoleAdmin)
		require.NoError(t, err)

		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

		err = repo.Save(context.Background(), user)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements UserRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		var _ identity.UserRepository = repo
	})
}
