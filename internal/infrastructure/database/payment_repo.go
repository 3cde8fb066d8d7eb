package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/output"
)

var _ output.PaymentRepository = (*PaymentRepository)(nil)

type PaymentRepository struct {
	querier
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{querier{pool: pool}}
}

func (r *PaymentRepository) Create(ctx context.Context, p *entities.Payment) error {
	const stmt = `
INSERT INTO payments (id, user_id, event_id, amount, currency, receipt, gateway_order_id,
                      gateway_payment_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.exec(ctx, stmt,
		p.ID, p.UserID, p.EventID, p.Amount, p.Currency, p.Receipt, p.GatewayOrderID,
		p.GatewayPaymentID, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) FindByOrderIDForUpdate(ctx context.Context, orderID string) (*entities.Payment, error) {
	const query = `
SELECT id, user_id, event_id, amount, currency, receipt, gateway_order_id,
       gateway_payment_id, status, created_at, updated_at
FROM payments
WHERE gateway_order_id = $1
FOR UPDATE`

	var p entities.Payment
	err := r.queryRow(ctx, query, orderID).Scan(
		&p.ID, &p.UserID, &p.EventID, &p.Amount, &p.Currency, &p.Receipt, &p.GatewayOrderID,
		&p.GatewayPaymentID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id, status, gatewayPaymentID string) error {
	tag, err := r.exec(ctx,
		`UPDATE payments SET status = $2, gateway_payment_id = $3, updated_at = NOW() WHERE id = $1`,
		id, status, gatewayPaymentID)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}
