package session

import (
	"context"
	"sync"

	"katalog/internal/metrics"
	"katalog/internal/model"

	"github.com/rs/zerolog"
)

// State is the authorization state of a gate.
type State int

const (
	// StateChecking is the initial state; protected content must not render.
	StateChecking State = iota
	StateAuthorized
	StateUnauthorized
)

func (s State) String() string {
	switch s {
	case StateAuthorized:
		return "authorized"
	case StateUnauthorized:
		return "unauthorized"
	default:
		return "checking"
	}
}

// SessionChecker looks up a session by token.
type SessionChecker interface {
	GetSession(ctx context.Context, token string) (*model.Session, error)
}

// Decision is the outcome of entering a gate.
type Decision struct {
	State   State
	Session *model.Session
	// Redirect is true exactly once per gate, on the call that moved it to
	// StateUnauthorized.
	Redirect bool
}

// Gate guards one entry into a protected view. It starts in StateChecking,
// leaves it once and never returns: Authorized and Unauthorized are terminal.
// A failed session lookup counts as Unauthorized.
type Gate struct {
	checker SessionChecker
	logger  zerolog.Logger

	mu      sync.Mutex
	state   State
	session *model.Session
}

// NewGate creates a gate in StateChecking.
func NewGate(checker SessionChecker, logger zerolog.Logger) *Gate {
	return &Gate{
		checker: checker,
		logger:  logger.With().Str("component", "session-gate").Logger(),
		state:   StateChecking,
	}
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Enter resolves the gate for token. The first call performs the lookup;
// later calls return the settled state without redirecting again.
func (g *Gate) Enter(ctx context.Context, token string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateChecking {
		return Decision{State: g.state, Session: g.session}
	}

	sess, err := g.checker.GetSession(ctx, token)
	switch {
	case err != nil:
		g.logger.Warn().Err(err).Msg("session lookup failed, denying access")
		g.state = StateUnauthorized
	case sess == nil:
		g.state = StateUnauthorized
	default:
		g.state = StateAuthorized
		g.session = sess
	}

	metrics.GateDecisionsTotal.WithLabelValues(g.state.String()).Inc()

	if g.state == StateUnauthorized {
		return Decision{State: StateUnauthorized, Redirect: true}
	}

	g.logger.Debug().Int64("user_id", sess.UserID).Msg("session authorized")
	return Decision{State: StateAuthorized, Session: sess}
}
