package mail

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/model"
)

var _ model.Mailer = (*BreakerMailer)(nil)

// BreakerConfig configures the circuit breaker around a mailer.
type BreakerConfig struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// BreakerMailer stops calling a failing mail relay until it recovers.
type BreakerMailer struct {
	next model.Mailer
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerMailer(next model.Mailer, cfg BreakerConfig, logger *logger.Logger) *BreakerMailer {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}

	settings := gobreaker.Settings{
		Name:        "mailer",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Mailer: circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &BreakerMailer{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

// SendInvite forwards to the wrapped mailer unless the breaker is open, in
// which case gobreaker.ErrOpenState is returned.
func (m *BreakerMailer) SendInvite(ctx context.Context, email model.InviteEmail) error {
	_, err := m.cb.Execute(func() (struct{}, error) {
		return struct{}{}, m.next.SendInvite(ctx, email)
	})
	return err
}

// State reports the current breaker state.
func (m *BreakerMailer) State() gobreaker.State {
	return m.cb.State()
}
