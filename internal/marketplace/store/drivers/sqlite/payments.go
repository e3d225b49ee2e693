package sqlite

import (
	"context"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
)

type paymentsRepo struct {
	db dbtx
}

const paymentColumns = `id, user_id, amount, currency, order_id, payment_id, signature, status, created_at, updated_at`

func scanPayment(row scanner) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.Currency, &p.OrderID, &p.PaymentID,
		&p.Signature, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Payment{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *paymentsRepo) CreatePayment(ctx context.Context, p domain.Payment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Amount, p.Currency, p.OrderID, p.PaymentID, p.Signature, p.Status,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	return mapUnique(err)
}

func (r *paymentsRepo) GetPaymentByOrderID(ctx context.Context, orderID string) (domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = ?`, orderID))
	return p, mapNotFound(err)
}

func (r *paymentsRepo) UpdatePayment(ctx context.Context, p domain.Payment) error {
	return requireOne(r.db.ExecContext(ctx, `
		UPDATE payments SET payment_id = ?, signature = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		p.PaymentID, p.Signature, p.Status, p.UpdatedAt.UTC(), p.ID,
	))
}
