package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSequenceRepository creates a GormSequenceRepository with a mocked SQL connection
func newMockSequenceRepository(t *testing.T) (*GormSequenceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSequenceRepository(gormDB), mock, mockDB
}

func TestGormSequenceRepository_Next(t *testing.T) {
	t.Run("returns the incremented counter", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`(?s)INSERT INTO order_sequences.*ON CONFLICT \(key\).*RETURNING value`).
			WithArgs("INV-20250102").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(7))

		value, err := repo.Next(context.Background(), "INV-20250102")

		assert.NoError(t, err)
		assert.Equal(t, int64(7), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts a fresh key at one", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO order_sequences`).
			WithArgs("QUO-202501").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(1))

		value, err := repo.Next(context.Background(), "QUO-202501")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO order_sequences`).
			WithArgs("PO-202501").
			WillReturnError(errors.New("connection reset"))

		value, err := repo.Next(context.Background(), "PO-202501")

		assert.Error(t, err)
		assert.Equal(t, int64(0), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
