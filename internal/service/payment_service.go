package service

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/gateway"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// paymentTransitions 合法的付款狀態轉移
var paymentTransitions = map[model.PaymentStatusEnum][]model.PaymentStatusEnum{
	model.PaymentStatusUnpaid:    {model.PaymentStatusInitiated},
	model.PaymentStatusInitiated: {model.PaymentStatusPending, model.PaymentStatusCompleted, model.PaymentStatusFailed},
	model.PaymentStatusPending:   {model.PaymentStatusCompleted, model.PaymentStatusFailed},
	model.PaymentStatusCompleted: {model.PaymentStatusRefunded},
}

func canTransitPayment(from, to model.PaymentStatusEnum) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type IPaymentService interface {
	// InitiatePayment 對pending訂單發起付款, 呼叫金流商建立交易
	//
	// 錯誤:
	//   - apperr.InvalidStateCode 464: 訂單已付款或已取消
	InitiatePayment(ctx context.Context, principal model.Principal, arg model.InitiatePaymentModel) (*model.PaymentModel, error)
	GetPayment(ctx context.Context, principal model.Principal, paymentID uuid.UUID) (*model.PaymentModel, error)
	// HandleGatewayCallback 金流商webhook回調
	// 重複回調同狀態視為成功 (冪等), 簽章錯誤一律拒絕
	HandleGatewayCallback(ctx context.Context, callback model.GatewayCallbackModel) error
	// ExpireStalePayments 將逾時未完成的initiated付款標記為failed
	ExpireStalePayments(ctx context.Context, olderThan time.Duration) (int64, error)
}

type PaymentService struct {
	store   db.IStore
	gateway gateway.IPaymentGateway
	logger  *zerolog.Logger
}

func NewPaymentService(store db.IStore, gw gateway.IPaymentGateway, logger *zerolog.Logger) IPaymentService {
	if reflect.ValueOf(store).IsNil() {
		panic("payment service initialization failed: store cannot be nil")
	}
	if gw == nil {
		panic("payment service initialization failed: gateway cannot be nil")
	}
	return &PaymentService{
		store:   store,
		gateway: gw,
		logger:  logger,
	}
}

func (s *PaymentService) InitiatePayment(ctx context.Context, principal model.Principal, arg model.InitiatePaymentModel) (*model.PaymentModel, error) {
	order, err := s.store.GetOrderByID(ctx, arg.OrderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "order not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get order", err)
	}
	if order.UserID != principal.UserID {
		return nil, apperr.New(apperr.NotFoundCode, "order not found")
	}
	if order.Status == model.OrderStatusCancelled {
		return nil, apperr.New(apperr.InvalidStateCode, "order is cancelled")
	}
	// failed付款允許重新發起
	if order.PaymentStatus != model.PaymentStatusUnpaid && order.PaymentStatus != model.PaymentStatusFailed {
		return nil, apperr.Newf(apperr.InvalidStateCode, "order payment is already %s", order.PaymentStatus)
	}

	now := time.Now().UTC()
	payment := model.PaymentModel{
		ID:        uuid.New(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		Amount:    order.Total,
		Gateway:   arg.Gateway,
		Method:    arg.Method,
		Status:    model.PaymentStatusInitiated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 先在同一交易落地付款紀錄與訂單付款狀態, 再呼叫金流商 (不在交易中持鎖等外部請求)
	err = s.store.ExecTx(ctx, func(q db.Querier) error {
		if err := q.CreatePayment(ctx, payment); err != nil {
			return err
		}
		return q.UpdateOrderPaymentStatus(ctx, order.ID, model.PaymentStatusInitiated)
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to create payment", err)
	}

	result, err := s.gateway.InitiateTransaction(ctx, order.ID, order.Total, arg.Method)
	if err != nil {
		s.failInitiatedPayment(ctx, payment.ID, order.ID)
		return nil, apperr.Wrap(apperr.InternalErrorCode, "payment gateway request failed", err)
	}

	if err = s.store.SetPaymentGatewayTx(ctx, payment.ID, result.GatewayTransactionID, model.PaymentStatusInitiated); err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to set gateway transaction", err)
	}
	payment.GatewayTransactionID = result.GatewayTransactionID

	return &payment, nil
}

// failInitiatedPayment 金流商請求失敗時把付款與訂單標回failed, 允許重新發起
func (s *PaymentService) failInitiatedPayment(ctx context.Context, paymentID, orderID uuid.UUID) {
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		if err := q.UpdatePaymentStatus(ctx, paymentID, model.PaymentStatusFailed, "gateway request failed"); err != nil {
			return err
		}
		return q.UpdateOrderPaymentStatus(ctx, orderID, model.PaymentStatusFailed)
	})
	if err != nil && s.logger != nil {
		s.logger.Error().Err(err).
			Str("payment_id", paymentID.String()).
			Msg("failed to mark payment as failed after gateway error")
	}
}

func (s *PaymentService) GetPayment(ctx context.Context, principal model.Principal, paymentID uuid.UUID) (*model.PaymentModel, error) {
	payment, err := s.store.GetPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "payment not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get payment", err)
	}
	if payment.UserID != principal.UserID && !principal.IsAdmin() {
		return nil, apperr.New(apperr.NotFoundCode, "payment not found")
	}
	return &payment, nil
}

func (s *PaymentService) HandleGatewayCallback(ctx context.Context, callback model.GatewayCallbackModel) error {
	if !s.gateway.VerifySignature(callback.RawBody, callback.Signature) {
		return apperr.New(apperr.UnauthenticatedCode, "invalid gateway signature")
	}
	if !model.IsValidPaymentStatus(callback.Status) {
		return apperr.Newf(apperr.InvalidArgumentCode, "invalid payment status: %s", callback.Status)
	}
	target := model.PaymentStatusEnum(callback.Status)

	return s.store.ExecTx(ctx, func(q db.Querier) error {
		payment, err := q.GetPaymentByGatewayTxID(ctx, callback.GatewayTransactionID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return apperr.New(apperr.NotFoundCode, "payment not found")
			}
			return apperr.Wrap(apperr.InternalErrorCode, "failed to get payment", err)
		}

		// 重送相同狀態, 冪等回應
		if payment.Status == target {
			return nil
		}
		if !canTransitPayment(payment.Status, target) {
			return apperr.Newf(apperr.InvalidStateCode, "payment cannot transit from %s to %s", payment.Status, target)
		}

		if err = q.UpdatePaymentStatus(ctx, payment.ID, target, callback.FailureReason); err != nil {
			return apperr.Wrap(apperr.InternalErrorCode, "failed to update payment status", err)
		}
		// 訂單僅同步付款狀態, 出貨狀態由admin操作
		if err = q.UpdateOrderPaymentStatus(ctx, payment.OrderID, target); err != nil {
			return apperr.Wrap(apperr.InternalErrorCode, "failed to update order payment status", err)
		}

		if s.logger != nil {
			s.logger.Info().
				Str("payment_id", payment.ID.String()).
				Str("order_id", payment.OrderID.String()).
				Str("status", string(target)).
				Msg("payment status updated by gateway callback")
		}
		return nil
	})
}

func (s *PaymentService) ExpireStalePayments(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	expired, err := s.store.ExpireStalePayments(ctx, cutoff)
	if err != nil {
		return 0, apperr.Wrap(apperr.InternalErrorCode, "failed to expire stale payments", err)
	}
	if expired > 0 && s.logger != nil {
		s.logger.Info().Int64("expired", expired).Msg("stale payments marked as failed")
	}
	return expired, nil
}
