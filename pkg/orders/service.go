package orders

import (
	"context"
	"errors"
	"math"

	"github.com/example/giftstore/pkg/models"
	"github.com/example/giftstore/pkg/repository"
	"go.uber.org/zap"
)

const OrderCollection = "order"

// totalTolerance is the inclusive absolute tolerance between the declared
// total and the recomputed item sum.
const totalTolerance = 0.01

// ErrTotalMismatch rejects orders whose declared total disagrees with the
// item sum. Prices are client-supplied, so this is the only guard against a
// tampered or stale cart.
var ErrTotalMismatch = errors.New("Total mismatch")

// Receipt acknowledges an accepted order.
type Receipt struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
	Message string `json:"message,omitempty"`
}

// Service handles write-once order submission. There is no update, cancel
// or lookup path; fulfillment happens out of band.
type Service struct {
	store  repository.DocumentStore
	logger *zap.Logger
}

func NewService(store repository.DocumentStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// SubmitOrder validates the payload, checks the declared total against the
// recomputed item sum and persists the order when a store is connected.
// Without a configured store it acknowledges with a synthetic demo receipt
// so the storefront keeps working in demo deployments.
func (s *Service) SubmitOrder(ctx context.Context, order *models.Order) (*Receipt, error) {
	order.Normalize()
	if err := models.Validate(order); err != nil {
		return nil, err
	}

	totalCalc := round2(itemTotal(order.Items))
	if math.Abs(totalCalc-order.Total) > totalTolerance {
		s.logger.Info("Order rejected on total mismatch",
			zap.Float64("declared", order.Total),
			zap.Float64("computed", totalCalc))
		return nil, ErrTotalMismatch
	}

	if s.store.State() == repository.StateUnconfigured {
		s.logger.Info("Order accepted without persistence",
			zap.Int("items", len(order.Items)),
			zap.Float64("total", order.Total))
		return &Receipt{
			Status:  "accepted",
			OrderID: "demo",
			Message: "Заказ принят. Мы свяжемся для доставки цифрового подарка.",
		}, nil
	}

	id, err := s.store.InsertDocument(ctx, OrderCollection, order)
	if err != nil {
		s.logger.Error("Failed to persist order", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order accepted",
		zap.String("order_id", id),
		zap.Float64("total", order.Total))
	return &Receipt{Status: "accepted", OrderID: id}, nil
}

func itemTotal(items []models.OrderItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
