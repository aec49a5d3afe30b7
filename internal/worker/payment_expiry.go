package worker

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/rs/zerolog"
)

/*
PaymentExpiryWorker 定期把逾時未完成的付款標記為failed
請使用 defer 呼叫 Stop()
*/
type PaymentExpiryWorker struct {
	paymentService service.IPaymentService
	interval       time.Duration
	maxAge         time.Duration
	logger         *zerolog.Logger
	cancel         chan struct{}
	once           sync.Once
	wg             sync.WaitGroup
}

func NewPaymentExpiryWorker(paymentService service.IPaymentService, interval, maxAge time.Duration, logger *zerolog.Logger) *PaymentExpiryWorker {
	if reflect.ValueOf(paymentService).IsNil() {
		panic("payment expiry worker initialization failed: paymentService cannot be nil")
	}
	w := &PaymentExpiryWorker{
		paymentService: paymentService,
		interval:       interval,
		maxAge:         maxAge,
		logger:         logger,
		cancel:         make(chan struct{}),
	}
	w.wg.Add(1)
	go w.background()
	return w
}

func (w *PaymentExpiryWorker) background() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.cancel:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *PaymentExpiryWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := w.paymentService.ExpireStalePayments(ctx, w.maxAge)
	if err != nil && w.logger != nil {
		w.logger.Error().Err(err).Msg("payment expiry sweep failed")
	}
}

// Stop 停止背景掃描並等待當前一輪結束
func (w *PaymentExpiryWorker) Stop() {
	w.once.Do(func() {
		close(w.cancel)
	})
	w.wg.Wait()
}
