package repository_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendprints/storefront/internal/models"
	repository "github.com/trendprints/storefront/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartRepository(t *testing.T) {
	ctx := t.Context()
	cartColumns := []string{"id", "user_id", "items", "total", "created_at", "updated_at"}

	t.Run("GetCartByUserID", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`FROM carts WHERE user_id = $1`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewCartRepo(db)
			userID, cartID := primitive.NewObjectID(), primitive.NewObjectID()
			items := []models.CartItem{{ProductID: "p1", Name: "Luffy Gear 5", Price: 849, Quantity: 2, Image: "luffy.jpg", Size: "L"}}
			itemsJSON, err := json.Marshal(items)
			require.NoError(t, err)
			now := time.Now().UTC()

			mock.ExpectQuery(expectedSQL).
				WithArgs(userID.Hex()).
				WillReturnRows(sqlmock.NewRows(cartColumns).AddRow(cartID.Hex(), userID.Hex(), itemsJSON, 1698.0, now, now))

			// Act
			cart, err := repo.GetCartByUserID(ctx, userID)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, cartID, cart.ID)
			assert.Equal(t, userID, cart.UserID)
			assert.Equal(t, items, cart.Items)
			assert.Equal(t, 1698.0, cart.Total)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Not found", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewCartRepo(db)
			userID := primitive.NewObjectID()

			mock.ExpectQuery(expectedSQL).WithArgs(userID.Hex()).WillReturnError(sql.ErrNoRows)

			// Act
			cart, err := repo.GetCartByUserID(ctx, userID)

			// Assert
			assert.Nil(t, cart)
			assert.ErrorIs(t, err, repository.ErrNotFound)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Corrupt items", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewCartRepo(db)
			userID := primitive.NewObjectID()

			mock.ExpectQuery(expectedSQL).
				WithArgs(userID.Hex()).
				WillReturnRows(sqlmock.NewRows(cartColumns).AddRow(primitive.NewObjectID().Hex(), userID.Hex(), []byte(`{bad`), 0.0, time.Now(), time.Now()))

			// Act
			cart, err := repo.GetCartByUserID(ctx, userID)

			// Assert
			assert.Nil(t, cart)
			assert.ErrorContains(t, err, "failed to unmarshal cart items")
		})
	})

	t.Run("CreateCart", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`INSERT INTO carts (id, user_id, items, total, created_at, updated_at)`)

		t.Run("Success - Empty items stored as array", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewCartRepo(db)
			cart := &models.Cart{UserID: primitive.NewObjectID()}

			mock.ExpectExec(expectedSQL).
				WithArgs(sqlmock.AnyArg(), cart.UserID.Hex(), []byte("[]"), 0.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err := repo.CreateCart(ctx, cart)

			// Assert
			require.NoError(t, err)
			assert.False(t, cart.ID.IsZero())
			assert.NotNil(t, cart.Items)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Concurrent create", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewCartRepo(db)

			mock.ExpectExec(expectedSQL).WillReturnError(&pq.Error{Code: "23505", Constraint: "carts_user_id_key"})

			// Act
			err := repo.CreateCart(ctx, &models.Cart{UserID: primitive.NewObjectID()})

			// Assert
			assert.ErrorIs(t, err, repository.ErrDuplicate)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("SaveCart", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewCartRepo(db)
			cart := &models.Cart{
				ID:     primitive.NewObjectID(),
				UserID: primitive.NewObjectID(),
				Items:  []models.CartItem{{ProductID: "p1", Name: "Levi Ackerman", Price: 999, Quantity: 1, Image: "levi.jpg", Size: "M"}},
				Total:  999,
			}
			itemsJSON, err := json.Marshal(cart.Items)
			require.NoError(t, err)
			before := time.Now().Add(-time.Millisecond)

			mock.ExpectExec(expectedSQL).
				WithArgs(cart.ID.Hex(), cart.UserID.Hex(), itemsJSON, 999.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err = repo.SaveCart(ctx, cart)

			// Assert
			require.NoError(t, err)
			assert.True(t, cart.UpdatedAt.After(before))
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Database error", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewCartRepo(db)
			dbErr := errors.New("connection reset")

			mock.ExpectExec(expectedSQL).WillReturnError(dbErr)

			// Act
			err := repo.SaveCart(ctx, &models.Cart{UserID: primitive.NewObjectID()})

			// Assert
			assert.ErrorIs(t, err, dbErr)
			assert.ErrorContains(t, err, "failed to save the cart")
		})
	})

	t.Run("ClearCart", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)
		userID := primitive.NewObjectID()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE carts SET items = '[]'::jsonb, total = 0`)).
			WithArgs(sqlmock.AnyArg(), userID.Hex()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.ClearCart(ctx, userID)

		// Assert
		require.NoError(t, err, "clearing a missing cart is not an error")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
