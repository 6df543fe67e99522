package domainfilter

import (
	"strings"

	"github.com/ignite/email-domain-filter/internal/domain"
)

// ExtractDomain returns the substring after the last "@" of address. An
// address with no "@" is returned unchanged.
func ExtractDomain(address string) string {
	at := strings.LastIndex(address, "@")
	if at < 0 {
		return address
	}
	return address[at+1:]
}

// IsExcluded reports whether address should be withheld. Addresses without
// an "@" carry no domain and are never excluded.
func IsExcluded(address string, list domain.ExclusionList) bool {
	if list.Empty() || !strings.Contains(address, "@") {
		return false
	}
	return list.Contains(ExtractDomain(address))
}

// FilterSingle treats recipient as one address. It returns "" when the
// address's domain is excluded and recipient unchanged otherwise.
func FilterSingle(recipient string, list domain.ExclusionList) string {
	if IsExcluded(recipient, list) {
		return ""
	}
	return recipient
}

// FilterList splits a comma-joined recipient value and drops the excluded
// addresses, keeping the rest in their original order. Addresses are not
// trimmed: " user@example.com" keeps its leading space in the output.
func FilterList(recipient string, list domain.ExclusionList) string {
	kept, _ := partition(recipient, list)
	if kept == nil {
		return recipient
	}
	return strings.Join(kept, ",")
}

// Apply filters recipient with the named strategy.
func Apply(strategy domain.Strategy, recipient string, list domain.ExclusionList) (string, error) {
	switch strategy {
	case domain.StrategyDropOnMatch:
		return FilterSingle(recipient, list), nil
	case domain.StrategyPerAddress:
		return FilterList(recipient, list), nil
	default:
		return recipient, ErrUnknownStrategy
	}
}

// partition splits recipient into kept and removed addresses. A nil kept
// slice means the list is empty and nothing was inspected.
func partition(recipient string, list domain.ExclusionList) (kept, removed []string) {
	if list.Empty() {
		return nil, nil
	}
	kept = []string{}
	for _, addr := range strings.Split(recipient, ",") {
		if IsExcluded(addr, list) {
			removed = append(removed, addr)
			continue
		}
		kept = append(kept, addr)
	}
	return kept, removed
}
