package plugin

import (
	"context"
	"fmt"
	"sort"

	"github.com/ignite/email-domain-filter/internal/domain"
	"github.com/ignite/email-domain-filter/internal/notify"
	"github.com/ignite/email-domain-filter/internal/pkg/logger"
	"github.com/ignite/email-domain-filter/internal/service/domainfilter"
)

// InactiveNotice is shown when the commerce extension is missing.
const InactiveNotice = "The Email Domain Filter plugin requires the commerce extension to be installed and active."

// Plugin registers recipient filters for order notifications.
type Plugin struct {
	gateway    notify.NotificationGateway
	config     domainfilter.ConfigProvider
	host       Host
	strategies map[domain.NotificationEvent]domain.Strategy
	notices    *Notices
	active     bool
}

// New creates a plugin. A nil strategies map uses
// domain.DefaultEventStrategies.
func New(gateway notify.NotificationGateway, config domainfilter.ConfigProvider, host Host, strategies map[domain.NotificationEvent]domain.Strategy) *Plugin {
	if strategies == nil {
		strategies = domain.DefaultEventStrategies()
	}
	return &Plugin{
		gateway:    gateway,
		config:     config,
		host:       host,
		strategies: strategies,
		notices:    &Notices{},
	}
}

// Notices returns the plugin's admin notices.
func (p *Plugin) Notices() *Notices { return p.notices }

// Active reports whether Activate registered the filters.
func (p *Plugin) Active() bool { return p.active }

// Activate registers the filters, or records InactiveNotice when the
// commerce extension is not running. It returns an error only when the
// gateway rejects a registration.
func (p *Plugin) Activate(ctx context.Context) error {
	if !ExtensionActive(ctx, p.host) {
		p.notices.Add(domain.NoticeError, InactiveNotice)
		logger.Warn("plugin: commerce extension inactive, no recipient filters registered")
		return nil
	}

	events := make([]domain.NotificationEvent, 0, len(p.strategies))
	for ev := range p.strategies {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })

	for _, ev := range events {
		f, err := domainfilter.NewFilter(p.strategies[ev], p.config)
		if err != nil {
			return fmt.Errorf("event %s: %w", ev, err)
		}
		if err := p.gateway.RegisterRecipientFilter(ev, f.Recipient); err != nil {
			return fmt.Errorf("registering filter for %s: %w", ev, err)
		}
		logger.Debug("plugin: recipient filter registered", "event", string(ev), "strategy", string(f.Strategy()))
	}

	p.active = true
	logger.Info("plugin: recipient filters registered", "events", len(events))
	return nil
}

// FilterFor returns a filter for event using its configured strategy. The
// preview API uses it to explain a run without dispatching.
func (p *Plugin) FilterFor(event domain.NotificationEvent) (*domainfilter.Filter, error) {
	s, ok := p.strategies[event]
	if !ok {
		return nil, fmt.Errorf("%w: %s", notify.ErrUnknownEvent, event)
	}
	return domainfilter.NewFilter(s, p.config)
}
