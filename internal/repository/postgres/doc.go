// Package postgres implements repositories on database/sql with the
// lib/pq driver. Callers open the *sql.DB; this package only runs queries.
package postgres
