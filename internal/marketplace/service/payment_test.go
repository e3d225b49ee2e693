package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/events"
	"github.com/aussiebroadwan/estate/internal/marketplace/payment"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
)

type fakeGateway struct {
	fail    bool
	receipt string
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (payment.Order, error) {
	if g.fail {
		return payment.Order{}, errors.New("gateway: 503")
	}
	g.receipt = receipt
	return payment.Order{ID: "order_1", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == orderID+"|"+paymentID
}

func (g *fakeGateway) PublicKey() string { return "rzp_test_key" }

func TestPaymentService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("order and verify", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		gw := &fakeGateway{}
		svc := &PaymentService{Store: f.store, Gateway: gw, Policy: f.policy, Events: f.events, Now: f.clock.Now}
		buyer := policy.ActorFromUser(f.seedUser(t, "9111111111", domain.RoleBuyer))

		_, err := svc.CreateOrder(ctx, buyer, 0)
		require.ErrorIs(t, err, ErrInvalidAmount)

		order, err := svc.CreateOrder(ctx, buyer, 499.99)
		require.NoError(t, err)
		require.Equal(t, int64(49999), order.Amount)
		require.Equal(t, "rzp_test_key", order.Key)
		require.Equal(t, "order_1", order.OrderID)
		require.NotEmpty(t, gw.receipt)

		_, err = svc.Verify(ctx, buyer, "order_1", "pay_1", "")
		require.ErrorIs(t, err, ErrPaymentFields)
		_, err = svc.Verify(ctx, buyer, "order_x", "pay_1", "sig")
		require.ErrorIs(t, err, ErrPaymentNotFound)

		p, err := svc.Verify(ctx, buyer, "order_1", "pay_1", "forged")
		require.ErrorIs(t, err, ErrPaymentVerifyFail)
		require.Equal(t, domain.PaymentFailed, p.Status)

		p, err = svc.Verify(ctx, buyer, "order_1", "pay_1", "order_1|pay_1")
		require.NoError(t, err)
		require.Equal(t, domain.PaymentPaid, p.Status)
		require.Equal(t, "pay_1", p.PaymentID)

		require.Equal(t, []string{events.PaymentCreated, events.PaymentFailed, events.PaymentVerified}, f.events.Names())
	})

	t.Run("paid order stays paid", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		svc := &PaymentService{Store: f.store, Gateway: &fakeGateway{}, Policy: f.policy, Events: f.events, Now: f.clock.Now}
		buyer := policy.ActorFromUser(f.seedUser(t, "9111111111", domain.RoleBuyer))

		_, err := svc.CreateOrder(ctx, buyer, 10)
		require.NoError(t, err)
		_, err = svc.Verify(ctx, buyer, "order_1", "pay_1", "order_1|pay_1")
		require.NoError(t, err)

		p, err := svc.Verify(ctx, buyer, "order_1", "pay_1", "order_1|pay_1")
		require.NoError(t, err)
		require.Equal(t, domain.PaymentPaid, p.Status)

		_, err = svc.Verify(ctx, buyer, "order_1", "pay_2", "forged")
		require.ErrorIs(t, err, ErrPaymentVerifyFail)
		_, err = svc.Verify(ctx, buyer, "order_1", "pay_2", "order_1|pay_2")
		require.ErrorIs(t, err, ErrPaymentVerifyFail)

		stored, err := f.store.Payments().GetPaymentByOrderID(ctx, "order_1")
		require.NoError(t, err)
		require.Equal(t, domain.PaymentPaid, stored.Status)
		require.Equal(t, "pay_1", stored.PaymentID)
		require.Equal(t, "order_1|pay_1", stored.Signature)
		require.Equal(t, []string{events.PaymentCreated, events.PaymentVerified}, f.events.Names())
	})

	t.Run("other users cannot verify", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		svc := &PaymentService{Store: f.store, Gateway: &fakeGateway{}, Policy: f.policy}
		buyer := policy.ActorFromUser(f.seedUser(t, "9111111111", domain.RoleBuyer))

		_, err := svc.CreateOrder(ctx, buyer, 10)
		require.NoError(t, err)
		_, err = svc.Verify(ctx, policy.Actor{ID: "someone-else"}, "order_1", "pay_1", "order_1|pay_1")
		require.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("gateway failure is upstream", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		svc := &PaymentService{Store: f.store, Gateway: &fakeGateway{fail: true}, Policy: f.policy}

		_, err := svc.CreateOrder(ctx, policy.Actor{ID: "u1"}, 10)
		e := apperr.As(err)
		require.Equal(t, apperr.KindUpstream, e.Kind)
		require.Equal(t, "Failed to create payment order", e.Message)
	})
}
