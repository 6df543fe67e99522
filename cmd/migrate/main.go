// Command migrate creates and updates the edf_settings table used by the
// postgres settings backend. Applied files are recorded in
// edf_schema_migrations and skipped on later runs.
//
// Usage:
//
//	DATABASE_URL=postgres://... migrate [-dir migrations] [-status]
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

const createLedger = `CREATE TABLE IF NOT EXISTS edf_schema_migrations (
	name       TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func main() {
	dir := flag.String("dir", "migrations", "directory holding *.sql files")
	status := flag.Bool("status", false, "print applied migrations and stored settings, then exit")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}
	if _, err := db.ExecContext(ctx, createLedger); err != nil {
		log.Fatalf("create migration ledger: %v", err)
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		log.Fatalf("read migration ledger: %v", err)
	}

	if *status {
		printStatus(ctx, db, applied)
		return
	}

	files, err := pendingFiles(*dir, applied)
	if err != nil {
		log.Fatalf("read migrations dir %s: %v", *dir, err)
	}
	if len(files) == 0 {
		log.Println("edf_settings schema is up to date")
		return
	}

	for _, f := range files {
		if err := apply(ctx, db, *dir, f); err != nil {
			log.Fatalf("%s: %v", f, err)
		}
		log.Printf("applied %s", f)
	}
	log.Printf("%d migration(s) applied", len(files))
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]time.Time, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, applied_at FROM edf_schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var name string
		var at time.Time
		if err := rows.Scan(&name, &at); err != nil {
			return nil, err
		}
		out[name] = at
	}
	return out, rows.Err()
}

func pendingFiles(dir string, applied map[string]time.Time) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		if _, done := applied[e.Name()]; !done {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// apply runs one file and records it in the same transaction.
func apply(ctx context.Context, db *sql.DB, dir, name string) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if strings.TrimSpace(string(data)) != "" {
		if _, err := tx.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("exec: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO edf_schema_migrations (name) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit()
}

func printStatus(ctx context.Context, db *sql.DB, applied map[string]time.Time) {
	names := make([]string, 0, len(applied))
	for n := range applied {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Println("Applied migrations:")
	for _, n := range names {
		fmt.Printf("  %s  %s\n", applied[n].Format(time.RFC3339), n)
	}

	rows, err := db.QueryContext(ctx, `SELECT key, length(value), updated_at FROM edf_settings ORDER BY key`)
	if err != nil {
		fmt.Printf("Settings: unavailable (%v)\n", err)
		return
	}
	defer rows.Close()
	fmt.Println("Settings:")
	for rows.Next() {
		var key string
		var size int
		var updated time.Time
		if err := rows.Scan(&key, &size, &updated); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  %s  %d bytes  updated %s\n", key, size, updated.Format(time.RFC3339))
	}
}
