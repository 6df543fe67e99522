package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ignite/email-domain-filter/internal/domain"
	"github.com/ignite/email-domain-filter/internal/notify"
	"github.com/ignite/email-domain-filter/internal/pkg/httputil"
	"github.com/ignite/email-domain-filter/internal/pkg/logger"
	"github.com/ignite/email-domain-filter/internal/plugin"
	"github.com/ignite/email-domain-filter/internal/service/domainfilter"
)

// SettingsStore reads and writes the excluded-domain setting.
type SettingsStore interface {
	GetExcludedDomains(ctx context.Context) (string, error)
	SetExcludedDomains(ctx context.Context, text string) error
	Ping(ctx context.Context) error
}

// Gateway dispatches notifications through the registered filters.
type Gateway interface {
	Dispatch(ctx context.Context, event domain.NotificationEvent, recipient string, order *domain.Order) (*notify.Result, error)
	Events() []domain.NotificationEvent
	FilterCount(event domain.NotificationEvent) int
}

// Handlers contains all HTTP handlers
type Handlers struct {
	settings SettingsStore
	plugin   *plugin.Plugin
	gateway  Gateway
	page     *settingsPage
	health   *HealthChecker
}

// NewHandlers creates a new Handlers instance
func NewHandlers(settings SettingsStore, p *plugin.Plugin, gateway Gateway) (*Handlers, error) {
	page, err := newSettingsPage()
	if err != nil {
		return nil, err
	}
	return &Handlers{
		settings: settings,
		plugin:   p,
		gateway:  gateway,
		page:     page,
		health:   NewHealthChecker(settings, p),
	}, nil
}

// ExcludedDomainsResponse is the JSON form of the setting.
type ExcludedDomainsResponse struct {
	ExcludedDomains string   `json:"excluded_domains"`
	Domains         []string `json:"domains"`
}

// ExcludedDomainsRequest replaces the setting.
type ExcludedDomainsRequest struct {
	ExcludedDomains *string `json:"excluded_domains"`
}

// GetExcludedDomains handles GET /api/settings/excluded-domains
func (h *Handlers) GetExcludedDomains(w http.ResponseWriter, r *http.Request) {
	raw, err := h.settings.GetExcludedDomains(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, excludedDomainsResponse(raw))
}

// PutExcludedDomains handles PUT /api/settings/excluded-domains
func (h *Handlers) PutExcludedDomains(w http.ResponseWriter, r *http.Request) {
	var req ExcludedDomainsRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.ExcludedDomains == nil {
		httputil.BadRequest(w, "excluded_domains is required")
		return
	}
	if err := h.settings.SetExcludedDomains(r.Context(), *req.ExcludedDomains); err != nil {
		httputil.InternalError(w, err)
		return
	}
	logger.Info("api: excluded domains updated", "count", len(domain.ParseExclusionList(*req.ExcludedDomains)))
	httputil.OK(w, excludedDomainsResponse(*req.ExcludedDomains))
}

func excludedDomainsResponse(raw string) ExcludedDomainsResponse {
	list := domain.ParseExclusionList(raw)
	if list == nil {
		list = domain.ExclusionList{}
	}
	return ExcludedDomainsResponse{ExcludedDomains: raw, Domains: list}
}

// PreviewRequest asks how a recipient value would be filtered. Strategy
// wins over Event when both are set.
type PreviewRequest struct {
	Recipient string                   `json:"recipient"`
	Strategy  domain.Strategy          `json:"strategy"`
	Event     domain.NotificationEvent `json:"event"`
}

// PreviewFilter handles POST /api/filter/preview
func (h *Handlers) PreviewFilter(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	var (
		f   *domainfilter.Filter
		err error
	)
	switch {
	case req.Strategy != "":
		f, err = domainfilter.NewFilter(req.Strategy, h.settings)
	case req.Event != "":
		f, err = h.plugin.FilterFor(req.Event)
	default:
		httputil.BadRequest(w, "strategy or event is required")
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, domainfilter.ErrUnknownStrategy):
			httputil.BadRequest(w, err.Error())
		case errors.Is(err, notify.ErrUnknownEvent):
			httputil.NotFound(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	httputil.OK(w, f.Explain(r.Context(), req.Recipient))
}

// NotificationRequest is the body of POST /api/notifications/{event}.
type NotificationRequest struct {
	Recipient string        `json:"recipient"`
	Order     *domain.Order `json:"order"`
}

// DispatchNotification handles POST /api/notifications/{event}
func (h *Handlers) DispatchNotification(w http.ResponseWriter, r *http.Request) {
	event := domain.NotificationEvent(chi.URLParam(r, "event"))

	var req NotificationRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.Order == nil {
		req.Order = &domain.Order{}
	}

	res, err := h.gateway.Dispatch(r.Context(), event, req.Recipient, req.Order)
	if err != nil {
		switch {
		case errors.Is(err, notify.ErrUnknownEvent):
			httputil.NotFound(w, err.Error())
		case res != nil:
			logger.Error("api: notification send failed", "event", string(event), "error", err)
			httputil.JSON(w, http.StatusBadGateway, httputil.ErrorResponse{
				Error:   "notification could not be sent",
				Details: res,
			})
		default:
			httputil.InternalError(w, err)
		}
		return
	}
	httputil.OK(w, res)
}

// EventInfo describes one notification event and its registered filters.
type EventInfo struct {
	Event   domain.NotificationEvent `json:"event"`
	Filters int                      `json:"filters"`
}

// ListEvents handles GET /api/notifications/events
func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	events := h.gateway.Events()
	out := make([]EventInfo, 0, len(events))
	for _, ev := range events {
		out = append(out, EventInfo{Event: ev, Filters: h.gateway.FilterCount(ev)})
	}
	httputil.OK(w, map[string]any{
		"active": h.plugin.Active(),
		"events": out,
	})
}

// ListNotices handles GET /api/notices
func (h *Handlers) ListNotices(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{"notices": h.plugin.Notices().List()})
}
