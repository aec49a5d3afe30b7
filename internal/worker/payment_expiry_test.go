package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubPaymentService struct {
	sweeps atomic.Int64
}

func (s *stubPaymentService) ExpireStalePayments(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.sweeps.Add(1)
	return 0, nil
}

func (s *stubPaymentService) InitiatePayment(ctx context.Context, principal model.Principal, arg model.InitiatePaymentModel) (*model.PaymentModel, error) {
	return nil, nil
}

func (s *stubPaymentService) GetPayment(ctx context.Context, principal model.Principal, paymentID uuid.UUID) (*model.PaymentModel, error) {
	return nil, nil
}

func (s *stubPaymentService) HandleGatewayCallback(ctx context.Context, callback model.GatewayCallbackModel) error {
	return nil
}

func TestPaymentExpiryWorkerSweeps(t *testing.T) {
	stub := &stubPaymentService{}
	w := NewPaymentExpiryWorker(stub, 10*time.Millisecond, 30*time.Minute, nil)
	defer w.Stop()

	require.Eventually(t, func() bool {
		return stub.sweeps.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestPaymentExpiryWorkerStopIsIdempotent(t *testing.T) {
	stub := &stubPaymentService{}
	w := NewPaymentExpiryWorker(stub, time.Hour, time.Hour, nil)

	w.Stop()
	w.Stop()
}
