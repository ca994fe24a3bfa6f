// Package metrics records authentication outcomes as Prometheus metrics.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/majorcontext/keypair/internal/credential"
	"github.com/majorcontext/keypair/internal/provider"
)

// Result labels.
const (
	ResultOK             = "ok"
	ResultMissingConfig  = "missing_config"
	ResultMissingSection = "missing_section"
	ResultMissingField   = "missing_field"
	ResultEmptyField     = "empty_field"
	ResultInvalidField   = "invalid_field"
	ResultError          = "error"
)

// Metrics holds the authentication metrics.
type Metrics struct {
	AuthenticationsTotal *prometheus.CounterVec
	LastSuccess          *prometheus.GaugeVec

	now func() time.Time
}

// New registers and returns the metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AuthenticationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "keypair_authentications_total",
			Help: "Total authentication attempts by profile and result.",
		}, []string{"profile", "result"}),
		LastSuccess: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "keypair_last_success_timestamp_seconds",
			Help: "Unix time of the last successful authentication.",
		}, []string{"profile"}),
		now: time.Now,
	}
}

// Record counts one authentication outcome for profile.
func (m *Metrics) Record(profile string, err error) {
	if m == nil {
		return
	}
	m.AuthenticationsTotal.WithLabelValues(profile, Result(err)).Inc()
	if err == nil {
		m.LastSuccess.WithLabelValues(profile).Set(float64(m.now().Unix()))
	}
}

// Result maps an Authenticate error to its label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, credential.ErrConfigurationMissing):
		return ResultMissingConfig
	case errors.Is(err, credential.ErrMissingCredentialsSection):
		return ResultMissingSection
	case errors.Is(err, credential.ErrMissingCredentialField):
		return ResultMissingField
	case errors.Is(err, credential.ErrEmptyCredentialField):
		return ResultEmptyField
	case errors.Is(err, credential.ErrInvalidCredentialField):
		return ResultInvalidField
	default:
		return ResultError
	}
}

// Instrument wraps auth so every Authenticate call is recorded.
func (m *Metrics) Instrument(profile string, auth provider.Authenticator) provider.Authenticator {
	return &instrumented{Authenticator: auth, profile: profile, metrics: m}
}

type instrumented struct {
	provider.Authenticator
	profile string
	metrics *Metrics
}

func (i *instrumented) Authenticate() (credential.Credentials, error) {
	creds, err := i.Authenticator.Authenticate()
	i.metrics.Record(i.profile, err)
	return creds, err
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
