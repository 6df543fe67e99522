package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/ignite/email-domain-filter/internal/domain"
	"github.com/ignite/email-domain-filter/internal/notify"
	"github.com/ignite/email-domain-filter/internal/service/domainfilter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records registrations.
type fakeGateway struct {
	filters map[domain.NotificationEvent][]notify.RecipientFilterFunc
	err     error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{filters: make(map[domain.NotificationEvent][]notify.RecipientFilterFunc)}
}

func (g *fakeGateway) RegisterRecipientFilter(ev domain.NotificationEvent, fn notify.RecipientFilterFunc) error {
	if g.err != nil {
		return g.err
	}
	g.filters[ev] = append(g.filters[ev], fn)
	return nil
}

// errHost fails every list lookup.
type errHost struct{ multisite bool }

func (errHost) ExtensionLoaded() bool { return false }
func (errHost) ActiveExtensions(context.Context) ([]string, error) {
	return nil, errors.New("options table missing")
}
func (h errHost) IsMultisite() bool { return h.multisite }
func (errHost) NetworkActiveExtensions(context.Context) ([]string, error) {
	return nil, errors.New("sitemeta missing")
}

func TestExtensionActive(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		host Host
		want bool
	}{
		{"loaded symbol", StaticHost{Loaded: true}, true},
		{"site list", StaticHost{Active: []string{"akismet/akismet.php", "woocommerce/woocommerce.php"}}, true},
		{"not listed", StaticHost{Active: []string{"akismet/akismet.php"}}, false},
		{"empty", StaticHost{}, false},
		{"network list on multisite", StaticHost{Multisite: true, NetworkActive: []string{"woocommerce/woocommerce.php"}}, true},
		{"network list ignored off multisite", StaticHost{NetworkActive: []string{"woocommerce/woocommerce.php"}}, false},
		{"lookup errors", errHost{multisite: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtensionActive(ctx, tt.host))
		})
	}
}

func TestActivate_InactiveRegistersNothing(t *testing.T) {
	gw := newFakeGateway()
	p := New(gw, domainfilter.StaticConfig("example.com"), StaticHost{}, nil)

	require.NoError(t, p.Activate(context.Background()))
	assert.False(t, p.Active())
	assert.Empty(t, gw.filters)

	notices := p.Notices().List()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.NoticeError, notices[0].Level)
	assert.Equal(t, InactiveNotice, notices[0].Message)
}

func TestActivate_RegistersEveryConfiguredEvent(t *testing.T) {
	gw := newFakeGateway()
	p := New(gw, domainfilter.StaticConfig("example.com"), StaticHost{Loaded: true}, nil)
	ctx := context.Background()

	require.NoError(t, p.Activate(ctx))
	assert.True(t, p.Active())
	assert.Len(t, gw.filters, 7)
	assert.Empty(t, p.Notices().List())

	// Strategy A on new_order: a list is treated as one address.
	newOrder := gw.filters[domain.EventNewOrder][0]
	assert.Equal(t, "", newOrder(ctx, "admin@example.com", nil))
	assert.Equal(t, "a@example.com,b@good.org", newOrder(ctx, "a@example.com,b@good.org", nil))

	// Strategy B on invoices.
	invoice := gw.filters[domain.EventCustomerInvoice][0]
	assert.Equal(t, "b@good.org", invoice(ctx, "a@example.com,b@good.org", nil))
}

func TestActivate_CustomStrategies(t *testing.T) {
	gw := newFakeGateway()
	strategies := map[domain.NotificationEvent]domain.Strategy{
		domain.EventNewOrder: domain.StrategyPerAddress,
	}
	p := New(gw, domainfilter.StaticConfig("example.com"), StaticHost{Loaded: true}, strategies)
	ctx := context.Background()

	require.NoError(t, p.Activate(ctx))
	require.Len(t, gw.filters, 1)
	assert.Equal(t, "b@good.org", gw.filters[domain.EventNewOrder][0](ctx, "a@example.com,b@good.org", nil))
}

func TestActivate_GatewayError(t *testing.T) {
	gw := newFakeGateway()
	gw.err = notify.ErrUnknownEvent
	p := New(gw, domainfilter.StaticConfig(""), StaticHost{Loaded: true}, nil)

	err := p.Activate(context.Background())
	assert.ErrorIs(t, err, notify.ErrUnknownEvent)
	assert.False(t, p.Active())
}

func TestActivate_BadStrategy(t *testing.T) {
	p := New(newFakeGateway(), domainfilter.StaticConfig(""), StaticHost{Loaded: true},
		map[domain.NotificationEvent]domain.Strategy{domain.EventNewOrder: "loud"})

	err := p.Activate(context.Background())
	assert.ErrorIs(t, err, domainfilter.ErrUnknownStrategy)
}

func TestActivate_WithDispatcher(t *testing.T) {
	tpl, err := notify.NewTemplates("Shop", nil)
	require.NoError(t, err)
	d := notify.NewDispatcher(notify.DispatcherConfig{FromEmail: "shop@shop.test"}, tpl, nopSender{})
	p := New(d, domainfilter.StaticConfig("example.com\nspam.test"), StaticHost{Loaded: true}, nil)
	ctx := context.Background()

	require.NoError(t, p.Activate(ctx))

	res, err := d.Dispatch(ctx, domain.EventCustomerCompletedOrder, "user@example.com", &domain.Order{ID: "1"})
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	res, err = d.Dispatch(ctx, domain.EventCustomerProcessingOrder, "a@example.com,b@good.org,c@example.com", &domain.Order{ID: "2"})
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, "b@good.org", res.Recipient)
}

func TestFilterFor(t *testing.T) {
	p := New(newFakeGateway(), domainfilter.StaticConfig(""), StaticHost{}, nil)

	f, err := p.FilterFor(domain.EventCustomerNote)
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyPerAddress, f.Strategy())

	_, err = p.FilterFor("nope")
	assert.ErrorIs(t, err, notify.ErrUnknownEvent)
}

type nopSender struct{}

func (nopSender) Send(_ context.Context, msg *domain.EmailMessage) (*domain.SendResult, error) {
	return &domain.SendResult{Success: true, MessageID: msg.ID}, nil
}
