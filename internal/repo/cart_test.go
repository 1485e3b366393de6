package repo

import (
	"context"
	"testing"

	"github.com/beggab/storechina/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMergeCartItemCreatesThenMerges(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := models.CartItem{CustomerID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 1}
	require.NoError(t, r.MergeCartItem(ctx, &first))

	second := models.CartItem{CustomerID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 2}
	require.NoError(t, r.MergeCartItem(ctx, &second))
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 3, second.Quantity)

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestMergeCartItemDistinctVariants(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	a := models.CartItem{CustomerID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 1}
	require.NoError(t, r.MergeCartItem(ctx, &a))

	b := models.CartItem{CustomerID: 1, ProductID: 5, Size: "43", Color: "black", Quantity: 1}
	require.NoError(t, r.MergeCartItem(ctx, &b))
	require.NotEqual(t, a.ID, b.ID)

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestMergeCartItemQuantityCap(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	item := models.CartItem{CustomerID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 9}
	require.NoError(t, r.MergeCartItem(ctx, &item))

	over := models.CartItem{CustomerID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 2}
	require.ErrorIs(t, r.MergeCartItem(ctx, &over), ErrQuantityRange)

	var stored models.CartItem
	require.NoError(t, r.DB.First(&stored, "id_cart = ?", item.ID).Error)
	require.Equal(t, 9, stored.Quantity, "failed merge must not change the row")

	exact := models.CartItem{CustomerID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 1}
	require.NoError(t, r.MergeCartItem(ctx, &exact))
	require.Equal(t, MaxCartQuantity, exact.Quantity)
}

func TestMergeCartItemDuplicateKeyTranslated(t *testing.T) {
	r := newTestRepo(t)

	require.NoError(t, r.DB.Create(&models.CartItem{
		CustomerID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 1,
	}).Error)

	err := r.DB.Create(&models.CartItem{
		CustomerID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 1,
	}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey,
		"the variant index must surface as ErrDuplicatedKey for the merge retry")
}

func TestMergeCartItemRetriesLostInsertRace(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	// Simulate a concurrent merge winning the insert: just before this
	// merge's create, slip the same variant into the table so the unique
	// index rejects the create and the retry loop has to recover.
	injected := false
	err := r.DB.Callback().Create().Before("gorm:create").Register("cart_merge_race", func(tx *gorm.DB) {
		if injected {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.CartItem); !ok {
			return
		}
		injected = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO cart (id_customer, id_product, size, color, quantity) VALUES (?, ?, ?, ?, ?)",
			1, 5, "42", "black", 3,
		)
	})
	require.NoError(t, err)

	item := models.CartItem{CustomerID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 2}
	require.NoError(t, r.MergeCartItem(ctx, &item))
	require.True(t, injected, "the conflicting insert must have fired")

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(1), count, "a lost insert race must never leave two rows")
}

func TestRemoveCartItemDecrementsThenDeletes(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	item := models.CartItem{CustomerID: 1, ProductID: 5, Quantity: 3}
	require.NoError(t, r.MergeCartItem(ctx, &item))

	deleted, err := r.RemoveCartItem(ctx, 1, item.ID, 1)
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = r.RemoveCartItem(ctx, 1, item.ID, 2)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = r.RemoveCartItem(ctx, 1, item.ID, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClearCart(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	for _, productID := range []uint{1, 2, 3} {
		item := models.CartItem{CustomerID: 1, ProductID: productID, Quantity: 1}
		require.NoError(t, r.MergeCartItem(ctx, &item))
	}
	keep := models.CartItem{CustomerID: 2, ProductID: 1, Quantity: 1}
	require.NoError(t, r.MergeCartItem(ctx, &keep))

	require.NoError(t, r.ClearCart(ctx, 1))

	items, err := r.CartItems(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, items)

	items, err = r.CartItems(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
}
