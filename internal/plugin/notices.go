package plugin

import (
	"sync"

	"github.com/ignite/email-domain-filter/internal/domain"
)

// Notices collects admin notices shown on the settings page.
type Notices struct {
	mu    sync.RWMutex
	items []domain.Notice
}

// Add appends a notice.
func (n *Notices) Add(level domain.NoticeLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, domain.Notice{Level: level, Message: message})
}

// List returns a copy of the current notices.
func (n *Notices) List() []domain.Notice {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]domain.Notice, len(n.items))
	copy(out, n.items)
	return out
}
