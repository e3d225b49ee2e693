package http

import (
	"net/http"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/service"
	"github.com/aussiebroadwan/estate/pkg/estatesdk"
	"github.com/aussiebroadwan/estate/pkg/httpx"
)

type PaymentsHandler struct {
	PaymentService *service.PaymentService
}

// HandleCreateOrder godoc
//
//	@Summary		Create a payment order
//	@Description	Opens a Razorpay order for the amount in rupees and returns what the checkout widget needs.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		estatesdk.CreateOrderRequest	true	"Amount in rupees"
//	@Success		201		{object}	estatesdk.CreateOrderResponse
//	@Failure		400		{object}	estatesdk.MessageResponse
//	@Failure		500		{object}	estatesdk.MessageResponse	"Gateway failure"
//	@Security		BearerAuth
//	@Router			/api/payments/order [post].
func (h *PaymentsHandler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req estatesdk.CreateOrderRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.PaymentService.CreateOrder(r.Context(), service.ActorFromContext(r.Context()), req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, estatesdk.CreateOrderResponse{
		Success:  true,
		Message:  "Payment order created successfully",
		OrderID:  order.OrderID,
		Key:      order.Key,
		Amount:   order.Amount,
		Currency: order.Currency,
	})
}

// HandleVerify godoc
//
//	@Summary		Verify a payment
//	@Description	Checks the checkout signature and records the payment as paid or failed.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		estatesdk.VerifyPaymentRequest	true	"Checkout result"
//	@Success		200		{object}	estatesdk.VerifyPaymentResponse
//	@Failure		400		{object}	estatesdk.MessageResponse	"Signature mismatch"
//	@Failure		404		{object}	estatesdk.MessageResponse	"Unknown order"
//	@Security		BearerAuth
//	@Router			/api/payments/verify [post].
func (h *PaymentsHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req estatesdk.VerifyPaymentRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.PaymentService.Verify(r.Context(), service.ActorFromContext(r.Context()), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, estatesdk.VerifyPaymentResponse{
		Success: true,
		Message: "Payment verified successfully",
		Payment: paymentInfo(p),
	})
}

func paymentInfo(p domain.Payment) estatesdk.Payment {
	return estatesdk.Payment{
		ID:        p.ID,
		OrderID:   p.OrderID,
		PaymentID: p.PaymentID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    string(p.Status),
	}
}
