package service

import (
	"github.com/aussiebroadwan/panel/pkg/httpx"
	"github.com/prometheus/client_golang/prometheus"
)

// Login outcomes used as the result label.
const (
	loginSuccess     = "success"
	loginInvalid     = "invalid_credentials"
	loginOTPRequired = "otp_required"
	loginInvalidOTP  = "invalid_otp"
	loginError       = "error"
)

// AuthMetrics counts authentication events. A nil *AuthMetrics is valid
// and records nothing.
type AuthMetrics struct {
	logins          *prometheus.CounterVec
	logouts         prometheus.Counter
	sessionsCleaned prometheus.Counter
}

func NewAuthMetrics(reg prometheus.Registerer) (*AuthMetrics, error) {
	m := &AuthMetrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "panel_auth_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "panel_auth_logouts_total",
			Help: "Completed logouts.",
		}),
		sessionsCleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "panel_auth_sessions_cleaned_total",
			Help: "Expired sessions removed by housekeeping.",
		}),
	}
	for _, c := range []prometheus.Collector{m.logins, m.logouts, m.sessionsCleaned} {
		if err := httpx.RegisterCollector(reg, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *AuthMetrics) login(result string) {
	if m != nil {
		m.logins.WithLabelValues(result).Inc()
	}
}

func (m *AuthMetrics) logout() {
	if m != nil {
		m.logouts.Inc()
	}
}

func (m *AuthMetrics) cleaned(n int64) {
	if m != nil && n > 0 {
		m.sessionsCleaned.Add(float64(n))
	}
}
