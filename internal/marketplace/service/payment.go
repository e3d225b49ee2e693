package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/events"
	"github.com/aussiebroadwan/estate/internal/marketplace/payment"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
	"github.com/aussiebroadwan/estate/internal/marketplace/store"
	"github.com/aussiebroadwan/estate/pkg/idx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

const currencyINR = "INR"

// OrderResult is what the checkout widget needs to open a payment.
type OrderResult struct {
	OrderID  string
	Key      string
	Amount   int64
	Currency string
}

type PaymentService struct {
	Store   store.Store
	Gateway payment.Gateway
	Policy  policy.Policy
	Events  events.Publisher
	Now     func() time.Time
}

// CreateOrder opens a gateway order for amount rupees.
func (s *PaymentService) CreateOrder(ctx context.Context, actor policy.Actor, amount float64) (OrderResult, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return OrderResult{}, ErrInvalidAmount
	}
	paise := int64(math.Round(amount * 100))

	p := domain.Payment{
		ID:       idx.New().String(),
		UserID:   actor.ID,
		Amount:   paise,
		Currency: currencyINR,
		Status:   domain.PaymentCreated,
	}
	order, err := s.Gateway.CreateOrder(ctx, paise, currencyINR, p.ID)
	if err != nil {
		slogx.FromContext(ctx).Error("payment order failed", "error", err)
		return OrderResult{}, apperr.Wrap(ErrPaymentOrderFailed, err)
	}

	now := now(s.Now)
	p.OrderID = order.ID
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.Store.Payments().CreatePayment(ctx, p); err != nil {
		return OrderResult{}, apperr.Internal(err)
	}

	events.Emit(ctx, s.Events, events.PaymentCreated, map[string]any{"order_id": order.ID, "user_id": actor.ID, "amount": paise})
	return OrderResult{OrderID: order.ID, Key: s.Gateway.PublicKey(), Amount: paise, Currency: currencyINR}, nil
}

// Verify checks the checkout signature and records the outcome. A bad
// signature marks the payment failed and returns ErrPaymentVerifyFail.
func (s *PaymentService) Verify(ctx context.Context, actor policy.Actor, orderID, paymentID, signature string) (domain.Payment, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return domain.Payment{}, ErrPaymentFields
	}

	p, err := s.Store.Payments().GetPaymentByOrderID(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Payment{}, ErrPaymentNotFound
	}
	if err != nil {
		return domain.Payment{}, apperr.Internal(err)
	}
	if !s.Policy.CanMutate(actor, p.UserID) {
		return domain.Payment{}, ErrNotAuthorized
	}

	ok := s.Gateway.VerifySignature(orderID, paymentID, signature)
	if p.Status == domain.PaymentPaid {
		// Settled orders never change. Repeating the original checkout
		// reply is answered as before.
		if ok && paymentID == p.PaymentID {
			return p, nil
		}
		return p, ErrPaymentVerifyFail
	}
	p.PaymentID = paymentID
	p.Signature = signature
	p.UpdatedAt = now(s.Now)
	event := events.PaymentVerified
	if ok {
		p.Status = domain.PaymentPaid
	} else {
		p.Status = domain.PaymentFailed
		event = events.PaymentFailed
	}
	if err := s.Store.Payments().UpdatePayment(ctx, p); err != nil {
		return domain.Payment{}, apperr.Internal(err)
	}

	events.Emit(ctx, s.Events, event, map[string]any{"order_id": orderID, "payment_id": paymentID, "user_id": p.UserID})
	if !ok {
		slogx.FromContext(ctx).Warn("payment signature mismatch", "order_id", orderID)
		return p, ErrPaymentVerifyFail
	}
	return p, nil
}
