package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_api_requests_total", Help: "API requests"},
		[]string{"endpoint", "status"},
	)
	Launches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_campaign_launches_total", Help: "Campaign launch outcomes"},
		[]string{"channel", "result"},
	)
	LaunchBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_launch_blocked_total", Help: "Launches rejected before any send"},
		[]string{"reason"},
	)
	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_messages_sent_total", Help: "Messages accepted by a provider"},
		[]string{"channel"},
	)
	ProviderSend = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_provider_send_total", Help: "Provider send outcomes"},
		[]string{"provider", "result"},
	)
	DispatchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "outreach_dispatch_latency_seconds", Help: "Batch dispatch latency"},
		[]string{"channel"},
	)
	Notices = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_notices_total", Help: "Operator notices emitted"},
		[]string{"severity"},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(APIRequests, Launches, LaunchBlocked, MessagesSent, ProviderSend, DispatchLatency, Notices)
}
