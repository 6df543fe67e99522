// Package settings implements the configuration store behind the settings
// page: a single raw text value holding the excluded email domains.
//
// The service stores text verbatim and never validates domain syntax. It
// depends on the Repository interface defined in repository.go and never
// imports net/http or a database driver directly.
package settings
