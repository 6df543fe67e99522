// Package sender delivers rendered notification messages. SESSender sends
// through AWS SES v2; LogSender only logs, for local runs and dry runs.
package sender
