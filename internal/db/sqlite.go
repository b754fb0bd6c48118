// Package db archives produced schedules into an SQLite file for reporting.
// Nothing in the engine reads an archive back.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/schedule"
	"github.com/javiermolinar/matchmaker/internal/sessions"
)

// ErrEmptyExport is returned when an export has nothing to write.
var ErrEmptyExport = errors.New("export has no buyers")

// SQLite is a schedule archive.
type SQLite struct {
	db *sql.DB
}

// Export is one archived schedule.
type Export struct {
	ID        int64
	Label     string
	Buyers    int
	Slots     int
	Filled    int
	Conflicts int
	CreatedAt time.Time
}

// Meeting is one filled in-block cell of an export, denormalised by name.
type Meeting struct {
	BuyerName    string
	BuyerCountry string
	Block        event.Block
	SessionID    string
	SessionName  string
	Start        string
	End          string
	SellerName   string
}

// New opens (creating if needed) the archive at path and runs migrations.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// MeetingsFrom flattens the filled in-block cells of a schedule, ordered by
// session (block, then start) and then by buyer order. Cells whose seller is
// not in sellers are skipped.
func MeetingsFrom(sched *schedule.Schedule, buyers []event.Buyer, sellers []event.Seller, list []event.Session) []Meeting {
	ordered := append([]event.Session(nil), list...)
	sessions.Sort(ordered)
	names := event.SellerNames(sellers)

	var out []Meeting
	for _, sess := range ordered {
		for _, b := range buyers {
			if b.Block != sess.Block {
				continue
			}
			sellerID, _ := sched.Get(b.ID, sess.ID)
			name, ok := names[sellerID]
			if sellerID == schedule.Empty || !ok {
				continue
			}
			out = append(out, Meeting{
				BuyerName:    b.Name,
				BuyerCountry: b.Country,
				Block:        b.Block,
				SessionID:    sess.ID,
				SessionName:  sess.Name,
				Start:        sess.Start,
				End:          sess.End,
				SellerName:   name,
			})
		}
	}
	return out
}

// WriteExport stores an export header and its meetings in one transaction.
// exp.ID and exp.CreatedAt are filled in.
func (s *SQLite) WriteExport(ctx context.Context, exp *Export, meetings []Meeting) error {
	if exp.Buyers == 0 {
		return ErrEmptyExport
	}
	if exp.CreatedAt.IsZero() {
		exp.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO exports (label, buyers, slots, filled, conflicts, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, exp.Label, exp.Buyers, exp.Slots, exp.Filled, exp.Conflicts, exp.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting export: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO meetings (
			export_id, buyer_name, buyer_country, block, session_id, session_name,
			start_time, end_time, seller_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, m := range meetings {
		if _, err := stmt.ExecContext(ctx, id,
			m.BuyerName,
			m.BuyerCountry,
			string(m.Block),
			m.SessionID,
			m.SessionName,
			m.Start,
			m.End,
			m.SellerName,
		); err != nil {
			return fmt.Errorf("inserting meeting %s/%s: %w", m.BuyerName, m.SessionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	exp.ID = id
	return nil
}

// ListExports returns every export, newest first.
func (s *SQLite) ListExports(ctx context.Context) ([]Export, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, buyers, slots, filled, conflicts, created_at
		FROM exports
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying exports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Export
	for rows.Next() {
		var (
			e         Export
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Label, &e.Buyers, &e.Slots, &e.Filled, &e.Conflicts, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning export: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exports: %w", err)
	}
	return out, nil
}

// ListMeetings returns the meetings of one export in insertion order.
func (s *SQLite) ListMeetings(ctx context.Context, exportID int64) ([]Meeting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT buyer_name, buyer_country, block, session_id, session_name,
		       start_time, end_time, seller_name
		FROM meetings
		WHERE export_id = ?
		ORDER BY id
	`, exportID)
	if err != nil {
		return nil, fmt.Errorf("querying meetings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Meeting
	for rows.Next() {
		var (
			m     Meeting
			block string
		)
		if err := rows.Scan(&m.BuyerName, &m.BuyerCountry, &block, &m.SessionID, &m.SessionName,
			&m.Start, &m.End, &m.SellerName); err != nil {
			return nil, fmt.Errorf("scanning meeting: %w", err)
		}
		m.Block = event.Block(block)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meetings: %w", err)
	}
	return out, nil
}
