package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS exports (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			label       TEXT NOT NULL,
			buyers      INTEGER NOT NULL,
			slots       INTEGER NOT NULL,
			filled      INTEGER NOT NULL,
			conflicts   INTEGER NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS meetings (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			export_id     INTEGER NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
			buyer_name    TEXT NOT NULL,
			buyer_country TEXT NOT NULL,
			block         TEXT NOT NULL CHECK(block IN ('morning', 'afternoon')),
			session_id    TEXT NOT NULL,
			session_name  TEXT NOT NULL,
			start_time    TIME NOT NULL,
			end_time      TIME NOT NULL,
			seller_name   TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_meetings_export ON meetings(export_id);
		CREATE INDEX IF NOT EXISTS idx_meetings_seller ON meetings(seller_name);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating archive tables: %w", err)
	}

	return nil
}
