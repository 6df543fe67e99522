package settings

import (
	"context"
	"fmt"
)

// Service reads and writes the excluded-domains setting. It implements
// domainfilter.ConfigProvider.
type Service struct {
	repo Repository
}

// NewService creates a settings service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetExcludedDomains returns the raw stored text, or "" if it was never set.
func (s *Service) GetExcludedDomains(ctx context.Context) (string, error) {
	v, found, err := s.repo.Get(ctx, KeyExcludedDomains)
	if err != nil {
		return "", fmt.Errorf("get excluded domains: %w", err)
	}
	if !found {
		return "", nil
	}
	return v, nil
}

// SetExcludedDomains stores text exactly as given.
func (s *Service) SetExcludedDomains(ctx context.Context, text string) error {
	if err := s.repo.Set(ctx, KeyExcludedDomains, text); err != nil {
		return fmt.Errorf("set excluded domains: %w", err)
	}
	return nil
}

// Ping checks the backing store when it supports health checks.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.repo.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
