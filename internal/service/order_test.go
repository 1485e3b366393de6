package service

import (
	"context"
	"testing"

	"github.com/beggab/storechina/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderValidation(t *testing.T) {
	svc := &OrderService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, Identity{}, []CartLine{{Name: "Watch", UnitPrice: 100, Quantity: 1}})
	require.ErrorIs(t, err, ErrCustomerResolution)

	_, err = svc.PlaceOrder(ctx, Identity{TelegramID: 42}, nil)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.PlaceOrder(ctx, Identity{TelegramID: 42}, []CartLine{{Name: "", UnitPrice: 100, Quantity: 1}})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.PlaceOrder(ctx, Identity{TelegramID: 42}, []CartLine{{Name: "Watch", UnitPrice: 0, Quantity: 1}})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.PlaceOrder(ctx, Identity{TelegramID: 42}, []CartLine{{Name: "Watch", UnitPrice: 100, Quantity: -2}})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderComputesTotals(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	orderID, err := svc.PlaceOrder(ctx, Identity{TelegramID: 42, FirstName: strPtr("Ivan")}, []CartLine{
		{Name: "SmartWatch Pro", UnitPrice: 1250, Quantity: 1},
		{Name: "Portable Speaker", UnitPrice: 670, Quantity: 2},
	})
	require.NoError(t, err)

	order, err := svc.ByID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, 2590.0, order.TotalAmountRUB)
	require.Len(t, order.Items, 2)
	require.Equal(t, 1250.0, order.Items[0].Subtotal)
	require.Equal(t, 1340.0, order.Items[1].Subtotal)
	require.Equal(t, models.OrderStatusPending, order.Status)
}

func TestPlaceOrderZeroQuantityMeansOne(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	orderID, err := svc.PlaceOrder(context.Background(), Identity{TelegramID: 42}, []CartLine{
		{Name: "Watch", UnitPrice: 99.99, Quantity: 0},
	})
	require.NoError(t, err)

	order, err := svc.ByID(context.Background(), orderID)
	require.NoError(t, err)
	require.Equal(t, 1, order.Items[0].Quantity)
	require.Equal(t, 99.99, order.TotalAmountRUB)
}

func TestCheckoutFromStoredCart(t *testing.T) {
	r := newTestRepo(t)
	orders := &OrderService{Repo: r}
	carts := &CartService{Repo: r}
	customers := &CustomerService{Repo: r}
	ctx := context.Background()

	require.NoError(t, r.UpsertProducts(ctx, []models.Product{
		{Name: "SmartWatch Pro", PriceRUB: 1250, TaobaoURL: "u", TaobaoItemID: "item-1"},
	}))
	product, err := r.ProductByItemID(ctx, "item-1")
	require.NoError(t, err)

	customer, err := customers.RegisterOrUpdate(ctx, Identity{TelegramID: 42, FirstName: strPtr("Ivan")})
	require.NoError(t, err)

	_, err = carts.MergeItem(ctx, customer.ID, product.ID, "42", "black", 2)
	require.NoError(t, err)

	orderID, err := orders.Checkout(ctx, Identity{TelegramID: 42})
	require.NoError(t, err)

	order, err := orders.ByID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, 2500.0, order.TotalAmountRUB)
	require.Len(t, order.Items, 1)
	require.Equal(t, "SmartWatch Pro", order.Items[0].ProductName)

	items, err := carts.Items(ctx, customer.ID)
	require.NoError(t, err)
	require.Empty(t, items, "checkout clears the cart")
}

func TestCheckoutEmptyCart(t *testing.T) {
	r := newTestRepo(t)
	orders := &OrderService{Repo: r}
	customers := &CustomerService{Repo: r}
	ctx := context.Background()

	_, err := customers.RegisterOrUpdate(ctx, Identity{TelegramID: 42})
	require.NoError(t, err)

	_, err = orders.Checkout(ctx, Identity{TelegramID: 42})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCheckoutUnknownCustomer(t *testing.T) {
	orders := &OrderService{Repo: newTestRepo(t)}

	_, err := orders.Checkout(context.Background(), Identity{TelegramID: 777})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryNewestFirst(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := svc.PlaceOrder(ctx, Identity{TelegramID: 42}, []CartLine{
			{Name: "Watch", UnitPrice: float64(100 * i), Quantity: 1},
		})
		require.NoError(t, err)
	}

	orders, err := svc.History(ctx, 42, 2, 0)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	_, err = svc.History(ctx, 777, 10, 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	orderID, err := svc.PlaceOrder(ctx, Identity{TelegramID: 42}, []CartLine{
		{Name: "Watch", UnitPrice: 100, Quantity: 1},
	})
	require.NoError(t, err)

	require.ErrorIs(t, svc.UpdateStatus(ctx, orderID, "teleported"), ErrValidation)
	require.ErrorIs(t, svc.UpdateStatus(ctx, orderID+100, models.OrderStatusPaid), ErrNotFound)
	require.NoError(t, svc.UpdateStatus(ctx, orderID, models.OrderStatusConfirmed))

	order, err := svc.ByID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusConfirmed, order.Status)
}
