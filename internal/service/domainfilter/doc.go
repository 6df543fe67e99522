// Package domainfilter removes recipients whose email domain is on the
// operator's exclusion list.
//
// The strategy functions (FilterSingle, FilterList, Apply) are pure: they
// take a recipient value and a parsed exclusion list and return the
// filtered value. Filter binds a strategy to a ConfigProvider so the list
// is read fresh on every notification, and its Recipient method has the
// shape the notification dispatcher expects from a recipient filter.
//
// An empty return value means "send to nobody".
package domainfilter
