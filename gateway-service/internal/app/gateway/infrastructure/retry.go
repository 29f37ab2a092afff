package infrastructure

import (
	"context"
	"errors"
	"time"

	"focusmap/pkg/logger"
	"focusmap/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
)

// CallPolicy ограничения одного вызова через адаптер протокола
type CallPolicy struct {
	Timeout      time.Duration // на каждую попытку
	MaxRetries   int           // повторы только после ErrTransport
	RetryBackoff time.Duration // линейный: backoff * номер повтора
}

// linearBackOff пауза растет на step с каждым повтором
type linearBackOff struct {
	step    time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return b.step * time.Duration(b.attempt)
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

func (p CallPolicy) backOff(ctx context.Context) backoff.BackOffContext {
	// WithMaxRetries(b, 0) не ограничивает повторы
	var b backoff.BackOff = &backoff.StopBackOff{}
	if p.MaxRetries > 0 {
		b = backoff.WithMaxRetries(&linearBackOff{step: p.RetryBackoff}, uint64(p.MaxRetries))
	}
	return backoff.WithContext(b, ctx)
}

// Invoke выполняет call с таймаутом на попытку и повторами транспортных ошибок.
// Fault, таймаут и отмена не повторяются. Записывает метрики protocol_client_*.
func Invoke(ctx context.Context, protocol, operation string, policy CallPolicy, call func(ctx context.Context) error) error {
	timer := metrics.NewTimer()

	var lastErr error
	operationFn := func() error {
		lastErr = attemptCall(ctx, policy.Timeout, call)
		if lastErr != nil && !errors.Is(lastErr, ErrTransport) {
			return backoff.Permanent(lastErr)
		}
		return lastErr
	}

	attempt := 0
	notify := func(err error, wait time.Duration) {
		attempt++
		metrics.ProtocolClientRetries.WithLabelValues(protocol, operation).Inc()
		logger.Warn().
			Err(err).
			Str("protocol", protocol).
			Str("operation", operation).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Msg("Protocol call failed, retrying")
	}

	err := backoff.RetryNotify(operationFn, policy.backOff(ctx), notify)
	// при отмене ctx между попытками backoff отдает ctx.Err(), наружу идет ошибка последней попытки
	if err != nil && lastErr != nil {
		err = lastErr
	}

	metrics.ProtocolClientCalls.WithLabelValues(protocol, operation, Outcome(err)).Inc()
	metrics.ProtocolClientDuration.WithLabelValues(protocol, operation).Observe(timer.Seconds())

	return err
}

func attemptCall(ctx context.Context, timeout time.Duration, call func(ctx context.Context) error) error {
	if timeout <= 0 {
		return call(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return call(ctx)
}
