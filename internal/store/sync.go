package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jobsift/internal/domain"
)

// Sync merges a deduplicated batch into the durable collection and returns
// the number of newly inserted listings.
//
// The batch is staged into a temp table on a single pinned connection, new
// identities are appended with one anti-join insert (collapsing any
// residual duplicate identities inside the staging area itself), and the
// staging table is dropped on every exit path. Existing rows are never
// updated or deleted, so running Sync twice with the same batch inserts
// zero the second time.
//
// Concurrent Sync calls against one database are the caller's problem; the
// CLI holds a file lock around the whole run for exactly this reason.
func (d *DB) Sync(ctx context.Context, batch []domain.Listing) (inserted int, err error) {
	conn, err := d.Pool.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("sync: acquire conn: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `
CREATE TEMP TABLE staging_listings (
  identity TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  company TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  summary TEXT NOT NULL DEFAULT '',
  link TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return 0, fmt.Errorf("sync: create staging: %w", err)
	}
	defer func() {
		// drop even when the insert failed or ctx was cancelled
		_, _ = conn.ExecContext(context.WithoutCancel(ctx),
			`DROP TABLE IF EXISTS temp.staging_listings;`)
	}()

	for _, l := range batch {
		if _, err := conn.ExecContext(ctx, `
INSERT INTO temp.staging_listings (identity, title, company, location, summary, link, description)
VALUES (?, ?, ?, ?, ?, ?, ?);`,
			l.Identity, l.Title, l.Company, l.Location, l.Summary, l.DetailLink, l.Description,
		); err != nil {
			return 0, fmt.Errorf("sync: stage listing %s: %w", l.Identity, err)
		}
	}

	res, err := conn.ExecContext(ctx, `
INSERT INTO listings (identity, title, company, location, summary, link, description)
SELECT s.identity, s.title, s.company, s.location, s.summary, s.link, s.description
FROM temp.staging_listings s
WHERE s.rowid IN (SELECT MIN(rowid) FROM temp.staging_listings GROUP BY identity)
  AND NOT EXISTS (SELECT 1 FROM listings l WHERE l.identity = s.identity);
`)
	if err != nil {
		return 0, fmt.Errorf("sync: merge staging: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sync: rows affected: %w", err)
	}
	return int(n), nil
}

// Exists reports whether an identity is already durable.
func (d *DB) Exists(ctx context.Context, identity string) (bool, error) {
	var one int
	err := d.Pool.QueryRowContext(ctx,
		`SELECT 1 FROM listings WHERE identity = ? LIMIT 1;`, identity).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("exists %s: %w", identity, err)
}

// Count returns the durable collection size.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.Pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return n, nil
}

// SelectAll returns every stored listing in insertion order.
func (d *DB) SelectAll(ctx context.Context) ([]domain.Listing, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT identity, title, company, location, summary, link, description
FROM listings
ORDER BY rowid;
`)
	if err != nil {
		return nil, fmt.Errorf("select listings: %w", err)
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(
			&l.Identity, &l.Title, &l.Company, &l.Location,
			&l.Summary, &l.DetailLink, &l.Description,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
