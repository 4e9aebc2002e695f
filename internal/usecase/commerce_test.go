package usecase

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/dto/request"
	"shop-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCoupon(t *testing.T, f *fixture, name string, discount float64, expiry time.Time) {
	t.Helper()
	_, err := f.svc.Coupon.Create(context.Background(), &request.CreateCouponRequest{
		Name:     name,
		Expiry:   expiry,
		Discount: discount,
	})
	require.NoError(t, err)
}

func TestCart_SetAndApplyCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "ada@example.com", "5550001")
	a := f.addProduct(t, "Phone Case", 10, 50)
	b := f.addProduct(t, "Cable", 5, 50)
	seedCoupon(t, f, "save10", 10, time.Now().Add(24*time.Hour))

	cart, err := f.svc.Cart.SetCart(ctx, user.String(), &request.SetCartRequest{Cart: []request.CartItemRequest{
		{ProductID: a.String(), Count: 2, Color: "red"},
		{ProductID: b.String(), Count: 3},
	}})
	require.NoError(t, err)
	assert.Equal(t, 35.0, cart.CartTotal)
	assert.Nil(t, cart.TotalAfterDiscount)
	require.Len(t, cart.Products, 2)
	assert.Equal(t, 10.0, cart.Products[0].Price)

	// coupon names are matched case-insensitively
	cart, err = f.svc.Cart.ApplyCoupon(ctx, user.String(), &request.ApplyCouponRequest{Coupon: "Save10"})
	require.NoError(t, err)
	require.NotNil(t, cart.TotalAfterDiscount)
	assert.Equal(t, 31.5, *cart.TotalAfterDiscount)

	// reapplying discounts the original total again
	cart, err = f.svc.Cart.ApplyCoupon(ctx, user.String(), &request.ApplyCouponRequest{Coupon: "SAVE10"})
	require.NoError(t, err)
	assert.Equal(t, 31.5, *cart.TotalAfterDiscount)

	got, err := f.svc.Cart.GetCart(ctx, user.String())
	require.NoError(t, err)
	assert.Equal(t, 31.5, *got.TotalAfterDiscount)
}

func TestCart_SetReplacesPrevious(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "ada@example.com", "5550001")
	a := f.addProduct(t, "Phone Case", 10, 50)

	_, err := f.svc.Cart.SetCart(ctx, user.String(), &request.SetCartRequest{Cart: []request.CartItemRequest{
		{ProductID: a.String(), Count: 4},
	}})
	require.NoError(t, err)

	cart, err := f.svc.Cart.SetCart(ctx, user.String(), &request.SetCartRequest{Cart: []request.CartItemRequest{
		{ProductID: a.String(), Count: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, 10.0, cart.CartTotal)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, 1, cart.Products[0].Count)
}

func TestCart_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "ada@example.com", "5550001")
	a := f.addProduct(t, "Phone Case", 10, 50)
	seedCoupon(t, f, "OLD", 50, time.Now().Add(-time.Hour))

	_, err := f.svc.Cart.GetCart(ctx, user.String())
	assert.True(t, apperror.Is(err, apperror.ErrNoActiveCart))

	_, err = f.svc.Cart.SetCart(ctx, user.String(), &request.SetCartRequest{Cart: []request.CartItemRequest{
		{ProductID: uuid.NewString(), Count: 1},
	}})
	assert.True(t, apperror.Is(err, apperror.ErrProductNotFound))

	_, err = f.svc.Cart.SetCart(ctx, user.String(), &request.SetCartRequest{Cart: []request.CartItemRequest{
		{ProductID: a.String(), Count: 0},
	}})
	assert.True(t, apperror.Is(err, apperror.ErrValidation))

	_, err = f.svc.Cart.SetCart(ctx, user.String(), &request.SetCartRequest{Cart: []request.CartItemRequest{
		{ProductID: a.String(), Count: 1},
	}})
	require.NoError(t, err)

	_, err = f.svc.Cart.ApplyCoupon(ctx, user.String(), &request.ApplyCouponRequest{Coupon: "OLD"})
	assert.True(t, apperror.Is(err, apperror.ErrInvalidCoupon))

	_, err = f.svc.Cart.ApplyCoupon(ctx, user.String(), &request.ApplyCouponRequest{Coupon: "MISSING"})
	assert.True(t, apperror.Is(err, apperror.ErrInvalidCoupon))

	require.NoError(t, f.svc.Cart.EmptyCart(ctx, user.String()))
	_, err = f.svc.Cart.GetCart(ctx, user.String())
	assert.True(t, apperror.Is(err, apperror.ErrNoActiveCart))
}

func TestCreateCashOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "ada@example.com", "5550001")
	a := f.addProduct(t, "Phone Case", 10, 50)
	b := f.addProduct(t, "Cable", 5, 20)
	seedCoupon(t, f, "SAVE10", 10, time.Now().Add(24*time.Hour))

	_, err := f.svc.Cart.SetCart(ctx, user.String(), &request.SetCartRequest{Cart: []request.CartItemRequest{
		{ProductID: a.String(), Count: 2},
		{ProductID: b.String(), Count: 3},
	}})
	require.NoError(t, err)
	_, err = f.svc.Cart.ApplyCoupon(ctx, user.String(), &request.ApplyCouponRequest{Coupon: "SAVE10"})
	require.NoError(t, err)

	order, err := f.svc.Order.CreateCashOrder(ctx, user.String(), &request.CashOrderRequest{COD: true, CouponApplied: true})
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderCashOnDelivery), order.OrderStatus)
	assert.Equal(t, string(entity.OrderCashOnDelivery), order.PaymentIntent.Status)
	assert.Equal(t, entity.PaymentMethodCOD, order.PaymentIntent.Method)
	assert.Equal(t, entity.CurrencyUSD, order.PaymentIntent.Currency)
	assert.Equal(t, 31.5, order.PaymentIntent.Amount)
	assert.NotEmpty(t, order.PaymentIntent.ID)
	assert.Len(t, order.Products, 2)

	pa, err := f.store.Products.FindByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 48, pa.Quantity)
	assert.Equal(t, 2, pa.Sold)

	pb, err := f.store.Products.FindByID(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 17, pb.Quantity)
	assert.Equal(t, 3, pb.Sold)

	// the cart survives checkout
	_, err = f.svc.Cart.GetCart(ctx, user.String())
	assert.NoError(t, err)

	orders, err := f.svc.Order.GetOrders(ctx, user.String())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	updated, err := f.svc.Order.UpdateOrderStatus(ctx, order.ID, &request.UpdateOrderStatusRequest{Status: "Dispatched"})
	require.NoError(t, err)
	assert.Equal(t, "Dispatched", updated.OrderStatus)
	assert.Equal(t, "Dispatched", updated.PaymentIntent.Status)

	all, err := f.svc.Order.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateCashOrder_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "ada@example.com", "5550001")

	_, err := f.svc.Order.CreateCashOrder(ctx, user.String(), &request.CashOrderRequest{COD: false})
	assert.True(t, apperror.Is(err, apperror.ErrCheckoutPayment))

	_, err = f.svc.Order.CreateCashOrder(ctx, user.String(), &request.CashOrderRequest{COD: true})
	assert.True(t, apperror.Is(err, apperror.ErrNoActiveCart))

	_, err = f.svc.Order.UpdateOrderStatus(ctx, uuid.NewString(), &request.UpdateOrderStatusRequest{Status: "Shipped"})
	assert.True(t, apperror.Is(err, apperror.ErrValidation))
}

func TestCreateCashOrder_FullPriceWithoutCouponFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "ada@example.com", "5550001")
	a := f.addProduct(t, "Phone Case", 10, 5)
	seedCoupon(t, f, "SAVE10", 10, time.Now().Add(time.Hour))

	_, err := f.svc.Cart.SetCart(ctx, user.String(), &request.SetCartRequest{Cart: []request.CartItemRequest{
		{ProductID: a.String(), Count: 1},
	}})
	require.NoError(t, err)
	_, err = f.svc.Cart.ApplyCoupon(ctx, user.String(), &request.ApplyCouponRequest{Coupon: "SAVE10"})
	require.NoError(t, err)

	order, err := f.svc.Order.CreateCashOrder(ctx, user.String(), &request.CashOrderRequest{COD: true})
	require.NoError(t, err)
	assert.Equal(t, 10.0, order.PaymentIntent.Amount)
}

func TestCreateCashOrder_InventoryFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "ada@example.com", "5550001")
	a := f.addProduct(t, "Phone Case", 10, 5)

	_, err := f.svc.Cart.SetCart(ctx, user.String(), &request.SetCartRequest{Cart: []request.CartItemRequest{
		{ProductID: a.String(), Count: 1},
	}})
	require.NoError(t, err)

	f.store.Products.AdjustErr = errors.New("connection reset")
	_, err = f.svc.Order.CreateCashOrder(ctx, user.String(), &request.CashOrderRequest{COD: true})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ErrUpstream))

	// the order was already written
	orders, err := f.svc.Order.GetOrders(ctx, user.String())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestProduct_RateReplacesPreviousRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice@example.com", "5550001")
	bob := f.register(t, "bob@example.com", "5550002")
	carol := f.register(t, "carol@example.com", "5550003")
	p := f.addProduct(t, "Phone Case", 10, 5)

	rate := func(who uuid.UUID, star int) int {
		t.Helper()
		resp, err := f.svc.Product.Rate(ctx, who.String(), &request.RatingRequest{ProductID: p.String(), Star: star})
		require.NoError(t, err)
		return resp.TotalRating
	}

	rate(alice, 5)
	rate(bob, 3)
	assert.Equal(t, 4, rate(carol, 4))

	// alice changes her mind: [1,3,4] averages to 2.67
	assert.Equal(t, 3, rate(alice, 1))

	product, err := f.svc.Product.Get(ctx, p.String())
	require.NoError(t, err)
	assert.Equal(t, 3, product.TotalRating)

	_, err = f.svc.Product.Rate(ctx, alice.String(), &request.RatingRequest{ProductID: p.String(), Star: 6})
	assert.True(t, apperror.Is(err, apperror.ErrValidation))

	_, err = f.svc.Product.Rate(ctx, alice.String(), &request.RatingRequest{ProductID: uuid.NewString(), Star: 2})
	assert.True(t, apperror.Is(err, apperror.ErrProductNotFound))
}

func TestProduct_CreateSlugAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Product.Create(ctx, &request.CreateProductRequest{
		Title:       "Apple Watch Series 9",
		Description: "watch",
		Price:       399,
		Category:    "Watches",
		Brand:       "Apple",
		Quantity:    3,
	})
	require.NoError(t, err)
	assert.Equal(t, "apple-watch-series-9", created.Slug)

	title := "Apple Watch Ultra"
	updated, err := f.svc.Product.Update(ctx, created.ID, &request.UpdateProductRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "apple-watch-ultra", updated.Slug)
	assert.Equal(t, 399.0, updated.Price)

	require.NoError(t, f.svc.Product.Delete(ctx, created.ID))
	_, err = f.svc.Product.Get(ctx, created.ID)
	assert.True(t, apperror.Is(err, apperror.ErrProductNotFound))

	_, err = f.svc.Product.Get(ctx, "not-a-uuid")
	assert.True(t, apperror.Is(err, apperror.ErrInvalidID))
}

func TestProduct_ListPageOutOfRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, title := range []string{"One", "Two", "Three"} {
		f.addProduct(t, title, 1, 1)
	}

	q, err := request.ParseListQuery(url.Values{"page": {"2"}, "limit": {"2"}})
	require.NoError(t, err)
	page, err := f.svc.Product.List(ctx, q)
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	q, err = request.ParseListQuery(url.Values{"page": {"3"}, "limit": {"2"}})
	require.NoError(t, err)
	_, err = f.svc.Product.List(ctx, q)
	assert.True(t, apperror.Is(err, apperror.ErrPageOutOfRange))
	assert.Equal(t, 404, apperror.HTTPStatus(err))
}

func TestWishlistToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "ada@example.com", "5550001")
	p := f.addProduct(t, "Phone Case", 10, 5)

	list, err := f.svc.Product.ToggleWishlist(ctx, user.String(), &request.WishlistRequest{ProductID: p.String()})
	require.NoError(t, err)
	require.Len(t, list.Wishlist, 1)
	assert.Equal(t, p.String(), list.Wishlist[0].ID)

	list, err = f.svc.Product.ToggleWishlist(ctx, user.String(), &request.WishlistRequest{ProductID: p.String()})
	require.NoError(t, err)
	assert.Empty(t, list.Wishlist)

	got, err := f.svc.User.GetWishlist(ctx, user.String())
	require.NoError(t, err)
	assert.Empty(t, got.Wishlist)
}

func TestUsers_ListAndAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t, "ada@example.com", "5550001")
	f.register(t, "bob@example.com", "5550002")

	page, err := f.svc.User.GetAllUsers(ctx, request.ListQuery{PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10}})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)

	_, err = f.svc.User.GetAllUsers(ctx, request.ListQuery{PaginatedRequest: request.PaginatedRequest{Page: 2, PerPage: 10, PageSet: true}})
	assert.True(t, apperror.Is(err, apperror.ErrPageOutOfRange))

	user, err := f.svc.User.SaveAddress(ctx, id.String(), &request.SaveAddressRequest{Address: "1 Main St"})
	require.NoError(t, err)
	require.NotNil(t, user.Address)
	assert.Equal(t, "1 Main St", *user.Address)

	require.NoError(t, f.svc.User.DeleteUser(ctx, id.String()))
	_, err = f.svc.User.GetUser(ctx, id.String())
	assert.True(t, apperror.Is(err, apperror.ErrUserNotFound))
}
