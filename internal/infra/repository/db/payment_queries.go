package db

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
)

const paymentColumns = `id, order_id, user_id, amount::text, gateway, method, gateway_transaction_id, status, failure_reason, refund_details, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (model.PaymentModel, error) {
	var p model.PaymentModel
	var amount string
	var gatewayTxID *string
	err := row.Scan(
		&p.ID,
		&p.OrderID,
		&p.UserID,
		&amount,
		&p.Gateway,
		&p.Method,
		&gatewayTxID,
		&p.Status,
		&p.FailureReason,
		&p.RefundDetails,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return model.PaymentModel{}, err
	}
	if gatewayTxID != nil {
		p.GatewayTransactionID = *gatewayTxID
	}
	if p.Amount, err = parseDecimal(amount); err != nil {
		return model.PaymentModel{}, err
	}
	return p, nil
}

// gateway_transaction_id 有唯一索引, 空字串存成NULL避免撞索引
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (q *Queries) CreatePayment(ctx context.Context, payment model.PaymentModel) error {
	sql := `
		INSERT INTO payments (id, order_id, user_id, amount, gateway, method, gateway_transaction_id, status, failure_reason, refund_details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := q.db.Exec(ctx, sql,
		payment.ID,
		payment.OrderID,
		payment.UserID,
		payment.Amount,
		payment.Gateway,
		payment.Method,
		nullIfEmpty(payment.GatewayTransactionID),
		payment.Status,
		payment.FailureReason,
		payment.RefundDetails,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	return translateError(err)
}

func (q *Queries) GetPaymentByID(ctx context.Context, id uuid.UUID) (model.PaymentModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM payments WHERE id = $1`, paymentColumns)

	payment, err := scanPayment(q.db.QueryRow(ctx, sql, id))
	if err != nil {
		return model.PaymentModel{}, translateError(err)
	}
	return payment, nil
}

func (q *Queries) GetPaymentByGatewayTxID(ctx context.Context, gatewayTxID string) (model.PaymentModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM payments WHERE gateway_transaction_id = $1`, paymentColumns)

	payment, err := scanPayment(q.db.QueryRow(ctx, sql, gatewayTxID))
	if err != nil {
		return model.PaymentModel{}, translateError(err)
	}
	return payment, nil
}

func (q *Queries) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatusEnum, failureReason string) error {
	tag, err := q.db.Exec(ctx,
		`UPDATE payments SET status = $1, failure_reason = $2, updated_at = $3 WHERE id = $4`,
		status, failureReason, time.Now().UTC(), id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) SetPaymentGatewayTx(ctx context.Context, id uuid.UUID, gatewayTxID string, status model.PaymentStatusEnum) error {
	tag, err := q.db.Exec(ctx,
		`UPDATE payments SET gateway_transaction_id = $1, status = $2, updated_at = $3 WHERE id = $4`,
		nullIfEmpty(gatewayTxID), status, time.Now().UTC(), id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpireStalePayments 將逾時未決的initiated付款標記為failed
func (q *Queries) ExpireStalePayments(ctx context.Context, cutoff time.Time) (int64, error) {
	sql := `
		UPDATE payments
		SET status = 'failed', failure_reason = 'payment expired', updated_at = $1
		WHERE status = 'initiated' AND created_at < $2
	`
	tag, err := q.db.Exec(ctx, sql, time.Now().UTC(), cutoff)
	if err != nil {
		return 0, translateError(err)
	}
	return tag.RowsAffected(), nil
}
