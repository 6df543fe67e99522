package domainfilter

import (
	"context"
	"fmt"
	"strings"

	"github.com/ignite/email-domain-filter/internal/domain"
	"github.com/ignite/email-domain-filter/internal/pkg/logger"
)

// ConfigProvider supplies the raw excluded-domains setting.
type ConfigProvider interface {
	GetExcludedDomains(ctx context.Context) (string, error)
}

// ConfigProviderFunc adapts a plain function to ConfigProvider.
type ConfigProviderFunc func(ctx context.Context) (string, error)

// GetExcludedDomains calls f.
func (f ConfigProviderFunc) GetExcludedDomains(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticConfig is a ConfigProvider holding a fixed setting value.
type StaticConfig string

// GetExcludedDomains returns the fixed value.
func (s StaticConfig) GetExcludedDomains(context.Context) (string, error) {
	return string(s), nil
}

// Filter applies one strategy using the exclusion list currently stored in
// its ConfigProvider. It holds no state between calls and is safe for
// concurrent use.
type Filter struct {
	strategy domain.Strategy
	config   ConfigProvider
}

// NewFilter binds strategy to config. It fails for an unknown strategy.
func NewFilter(strategy domain.Strategy, config ConfigProvider) (*Filter, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	return &Filter{strategy: strategy, config: config}, nil
}

// Strategy returns the strategy the filter applies.
func (f *Filter) Strategy() domain.Strategy { return f.strategy }

// ExclusionList reads and parses the current setting. A read error is
// logged and yields an empty list, so a broken store filters nothing.
func (f *Filter) ExclusionList(ctx context.Context) domain.ExclusionList {
	raw, err := f.config.GetExcludedDomains(ctx)
	if err != nil {
		logger.Warn("domainfilter: reading excluded domains failed, filtering nothing", "error", err)
		return nil
	}
	return domain.ParseExclusionList(raw)
}

// Recipient returns the filtered recipient value for a notification. The
// order is accepted so the method can be registered directly as a
// recipient filter; it does not influence the result. Recipient writes no
// log entries of its own; only a failed configuration read is logged.
func (f *Filter) Recipient(ctx context.Context, recipient string, _ *domain.Order) string {
	list := f.ExclusionList(ctx)
	if list.Empty() {
		return recipient
	}
	out, _ := Apply(f.strategy, recipient, list)
	return out
}

// Explanation describes what a filter run kept and removed.
type Explanation struct {
	Strategy   domain.Strategy `json:"strategy"`
	Input      string          `json:"input"`
	Output     string          `json:"output"`
	Kept       []string        `json:"kept"`
	Removed    []string        `json:"removed"`
	Excluded   []string        `json:"excluded_domains"`
	Suppressed bool            `json:"suppressed"`
}

// Explain runs the filter without side effects and reports which
// addresses survive. Suppressed is true when nothing would be sent.
func (f *Filter) Explain(ctx context.Context, recipient string) Explanation {
	list := f.ExclusionList(ctx)
	out, _ := Apply(f.strategy, recipient, list)

	exp := Explanation{
		Strategy:   f.strategy,
		Input:      recipient,
		Output:     out,
		Kept:       []string{},
		Removed:    []string{},
		Excluded:   []string(list),
		Suppressed: out == "",
	}
	if exp.Excluded == nil {
		exp.Excluded = []string{}
	}

	switch f.strategy {
	case domain.StrategyDropOnMatch:
		if out == "" && recipient != "" {
			exp.Removed = append(exp.Removed, recipient)
		} else if recipient != "" {
			exp.Kept = append(exp.Kept, recipient)
		}
	case domain.StrategyPerAddress:
		kept, removed := partition(recipient, list)
		if kept == nil {
			kept = strings.Split(recipient, ",")
		}
		for _, k := range kept {
			if k != "" {
				exp.Kept = append(exp.Kept, k)
			}
		}
		exp.Removed = append(exp.Removed, removed...)
	}
	return exp
}
