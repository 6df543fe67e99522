package plugin

import (
	"context"
	"strings"
)

// RequiredExtensionFile identifies the commerce extension in an
// active-extension list.
const RequiredExtensionFile = "woocommerce.php"

// Host describes the platform the plugin runs inside.
type Host interface {
	// ExtensionLoaded reports whether the commerce extension announced
	// itself directly.
	ExtensionLoaded() bool
	// ActiveExtensions lists the extensions active on this site.
	ActiveExtensions(ctx context.Context) ([]string, error)
	// IsMultisite reports whether the site belongs to a network.
	IsMultisite() bool
	// NetworkActiveExtensions lists extensions active network-wide.
	NetworkActiveExtensions(ctx context.Context) ([]string, error)
}

// StaticHost is a Host described entirely by configuration.
type StaticHost struct {
	Loaded        bool
	Active        []string
	Multisite     bool
	NetworkActive []string
}

func (h StaticHost) ExtensionLoaded() bool { return h.Loaded }

func (h StaticHost) ActiveExtensions(context.Context) ([]string, error) { return h.Active, nil }

func (h StaticHost) IsMultisite() bool { return h.Multisite }

func (h StaticHost) NetworkActiveExtensions(context.Context) ([]string, error) {
	return h.NetworkActive, nil
}

// ExtensionActive reports whether the commerce extension is active: either
// loaded, or listed in the site's (and in multisite, the network's) active
// extensions. List read errors count as "not listed".
func ExtensionActive(ctx context.Context, h Host) bool {
	if h.ExtensionLoaded() {
		return true
	}

	active, err := h.ActiveExtensions(ctx)
	if err != nil {
		active = nil
	}
	if h.IsMultisite() {
		network, err := h.NetworkActiveExtensions(ctx)
		if err == nil {
			active = append(active, network...)
		}
	}

	for _, ext := range active {
		if strings.Contains(ext, RequiredExtensionFile) {
			return true
		}
	}
	return false
}
