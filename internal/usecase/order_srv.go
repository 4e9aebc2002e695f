package usecase

import (
	"context"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/pkg/apperror"
	"shop-backend/pkg/utils"

	"go.uber.org/zap"
)

type OrderService interface {
	CreateCashOrder(ctx context.Context, userID string, req *request.CashOrderRequest) (*response.OrderResponse, error)
	GetOrders(ctx context.Context, userID string) ([]response.OrderResponse, error)
	GetAllOrders(ctx context.Context) ([]response.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error)
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

// CreateCashOrder turns the user's cart into a cash-on-delivery order and moves the
// purchased counts from stock to sold. The cart is left in place.
func (s *orderService) CreateCashOrder(ctx context.Context, userID string, req *request.CashOrderRequest) (*response.OrderResponse, error) {
	// 1. Cash on delivery is the only payment path
	if !req.COD {
		return nil, apperror.ErrCheckoutPayment
	}

	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	// 2. Load the cart
	cart, err := s.repo.Cart.FindByOwner(ctx, owner)
	if err != nil {
		return nil, upstream(err)
	}
	if cart == nil {
		return nil, apperror.ErrNoActiveCart
	}

	// 3. Charge the discounted total only when the client says a coupon was applied
	amount := cart.CartTotal
	if req.CouponApplied && cart.TotalAfterDiscount != nil {
		amount = *cart.TotalAfterDiscount
	}

	// 4. Create the order
	now := nowUTC()
	order := &entity.Order{
		Base:     entity.NewBase(now),
		OrderBy:  owner,
		Products: cart.Products,
		PaymentIntent: entity.PaymentIntent{
			ID:       utils.GeneratePaymentID(now),
			Method:   entity.PaymentMethodCOD,
			Amount:   amount,
			Status:   entity.OrderCashOnDelivery,
			Created:  now,
			Currency: entity.CurrencyUSD,
		},
		OrderStatus: entity.OrderCashOnDelivery,
	}
	if err := s.repo.Order.Create(ctx, order); err != nil {
		s.log.Error("Failed to create order", zap.Error(err), zap.String("user_id", userID))
		return nil, upstream(err)
	}

	// 5. Adjust inventory; the order stays committed if this fails
	if err := s.repo.Product.AdjustInventory(ctx, cart.Products); err != nil {
		s.log.Error("Inventory adjustment failed after order creation",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
		return nil, upstream(err)
	}

	s.log.Info("Cash order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID),
		zap.Float64("amount", amount),
		zap.String("payment_id", order.PaymentIntent.ID),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) GetOrders(ctx context.Context, userID string) ([]response.OrderResponse, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.Order.FindByOwner(ctx, owner)
	if err != nil {
		return nil, upstream(err)
	}
	return response.OrdersToResponse(orders), nil
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]response.OrderResponse, error) {
	orders, err := s.repo.Order.FindAll(ctx)
	if err != nil {
		return nil, upstream(err)
	}
	return response.OrdersToResponse(orders), nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	id, err := parseID(orderID)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Order.UpdateStatus(ctx, id, entity.OrderStatus(req.Status))
	if err != nil {
		return nil, upstream(err)
	}

	s.log.Info("Order status updated", zap.String("order_id", orderID), zap.String("status", req.Status))

	resp := response.OrderToResponse(order)
	return &resp, nil
}
