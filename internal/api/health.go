package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ignite/email-domain-filter/internal/pkg/httputil"
	"github.com/ignite/email-domain-filter/internal/plugin"
)

// HealthStatus represents the overall health of the system.
type HealthStatus struct {
	Status       string                    `json:"status"`
	Version      string                    `json:"version"`
	Uptime       string                    `json:"uptime"`
	PluginActive bool                      `json:"plugin_active"`
	Checks       map[string]ComponentCheck `json:"checks"`
}

// ComponentCheck represents the health of a single component.
type ComponentCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports on the settings store and the plugin.
type HealthChecker struct {
	store     pinger
	plugin    *plugin.Plugin
	startTime time.Time
}

// NewHealthChecker creates a new HealthChecker.
func NewHealthChecker(store pinger, p *plugin.Plugin) *HealthChecker {
	return &HealthChecker{store: store, plugin: p, startTime: time.Now()}
}

const healthVersion = "1.0.0"

// HandleHealth returns the health status. It always answers 200; the body
// carries the verdict.
//
//	GET /health
func (hc *HealthChecker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, hc.status(r.Context()))
}

// HandleReadiness answers 503 when the settings store is down.
//
//	GET /health/ready
func (hc *HealthChecker) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	st := hc.status(r.Context())
	code := http.StatusOK
	if st.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	httputil.JSON(w, code, st)
}

func (hc *HealthChecker) status(ctx context.Context) HealthStatus {
	checks := map[string]ComponentCheck{"settings": hc.checkStore(ctx)}
	overall := "healthy"
	for _, c := range checks {
		if c.Status != "up" {
			overall = "unhealthy"
		}
	}
	return HealthStatus{
		Status:       overall,
		Version:      healthVersion,
		Uptime:       formatUptime(time.Since(hc.startTime)),
		PluginActive: hc.plugin != nil && hc.plugin.Active(),
		Checks:       checks,
	}
}

func (hc *HealthChecker) checkStore(ctx context.Context) ComponentCheck {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	start := time.Now()
	if err := hc.store.Ping(ctx); err != nil {
		return ComponentCheck{Status: "down", Message: err.Error()}
	}
	return ComponentCheck{Status: "up", Latency: time.Since(start).Round(time.Microsecond).String()}
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
