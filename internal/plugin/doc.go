// Package plugin wires the domain filter into the notification gateway.
//
// Activate first checks that the host commerce extension is running. If it
// is, one domainfilter.Filter per configured event is registered with the
// gateway; if not, nothing is registered and an admin notice explains why.
package plugin
