// Package access implements the shared-secret check that gates proxy requests.
// The comparison is plain string equality; it is not hardened against
// timing attacks.
package access

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// DeniedMessage is returned by the proxy in place of a response when the
// caller's credential does not match.
const DeniedMessage = "Access denied!"

// DefaultSecret is the expected credential used by DefaultConfig.
const DefaultSecret = "$ecret C0DE"

var accessDeniedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "proxy_access_denied_total",
	Help: "Total number of requests rejected by the access gate",
})

// HasAccess reports whether presented exactly equals expected.
func HasAccess(expected, presented string) bool {
	return expected == presented
}

// Gate holds the expected secret and decides whether callers may proceed.
type Gate struct {
	secret string
	logger zerolog.Logger
}

// NewGate creates a gate that admits callers presenting secret.
func NewGate(secret string, logger zerolog.Logger) *Gate {
	return &Gate{
		secret: secret,
		logger: logger,
	}
}

// Allow checks the presented credential. Denials are logged and counted.
func (g *Gate) Allow(presented string) bool {
	if HasAccess(g.secret, presented) {
		return true
	}

	g.logger.Warn().Msg("Access denied - credential mismatch")
	accessDeniedTotal.Inc()
	return false
}
