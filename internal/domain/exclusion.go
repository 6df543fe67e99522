package domain

import "strings"

// ExclusionList is the parsed form of the excluded-domains setting: one
// domain per entry, in the order the operator entered them.
type ExclusionList []string

// ParseExclusionList splits the raw setting on newlines and trims each
// entry. Blank lines produce no entry, so "\r\n" text from a browser
// textarea parses the same as "\n" text.
func ParseExclusionList(raw string) ExclusionList {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	out := make(ExclusionList, 0, len(lines))
	for _, line := range lines {
		d := strings.TrimSpace(line)
		if d == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Contains reports whether domain exactly matches an entry. Matching is
// case-sensitive: "Example.com" does not match "example.com".
func (l ExclusionList) Contains(domain string) bool {
	for _, d := range l {
		if d == domain {
			return true
		}
	}
	return false
}

// Empty reports whether the list excludes nothing.
func (l ExclusionList) Empty() bool { return len(l) == 0 }

// String renders the list back into the newline-delimited setting format.
func (l ExclusionList) String() string { return strings.Join(l, "\n") }
