// Package metrics defines and registers the custom Prometheus metrics for
// the Fuelease API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fuelease"

// LoginsTotal counts credential-verification outcomes.
// Labels:
//   - role: "admin", "operator", or "customer"
//   - result: "success", "challenge" (2FA required), or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and outcome.",
	},
	[]string{"role", "result"},
)

// OTPIssuedTotal counts one-time codes issued.
// Label:
//   - purpose: "login_2fa" or "enrollment"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time codes issued, by purpose.",
	},
	[]string{"purpose"},
)

// OTPVerifiedTotal counts OTP verification outcomes.
// Labels:
//   - purpose: "login_2fa" or "enrollment"
//   - result: "success", "invalid_token", "no_pending", "expired", or "invalid_code"
var OTPVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verified_total",
		Help:      "Total number of one-time code verification attempts, by purpose and outcome.",
	},
	[]string{"purpose", "result"},
)

// EmailSendFailuresTotal counts best-effort notification emails that could
// not be delivered. Delivery is fire-and-forget, so failures surface only
// here and in the logs.
var EmailSendFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_send_failures_total",
		Help:      "Total number of notification emails that failed to send.",
	},
)
