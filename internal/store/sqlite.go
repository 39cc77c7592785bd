package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/faideww/luckymon/internal/lucky"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var _ lucky.Store = (*SQLiteStore)(nil)

type SQLiteStore struct {
	db         *sql.DB
	log        *zap.Logger
	getStmt    *sql.Stmt
	upsertStmt *sql.Stmt
	insertStmt *sql.Stmt
}

func OpenSQLite(dbPath string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db path: %w", err)
	}

	// DSN notes:
	// - _pragma=busy_timeout sets a lock wait
	// - _pragma=journal_mode(WAL) enables the write-ahead log
	// - _pragma=synchronous(NORMAL) sets the disk synchronizing
	//	 mode to NORMAL (recommended with WAL enabled)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", filepath.Clean(dbPath))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// a single connection serializes insert-then-read in PutIfAbsent
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, log: log}
	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.getStmt, `
			SELECT species_id, shiny, created_at
			FROM daily_assignments
			WHERE user_id = ? AND day = ?
		`},
		{&s.upsertStmt, `
			INSERT INTO daily_assignments (user_id, day, species_id, shiny, created_at)
			VALUES (?,?,?,?,?)
			ON CONFLICT (user_id, day) DO UPDATE SET
				species_id = excluded.species_id,
				shiny      = excluded.shiny,
				created_at = excluded.created_at
		`},
		{&s.insertStmt, `
			INSERT INTO daily_assignments (user_id, day, species_id, shiny, created_at)
			VALUES (?,?,?,?,?)
			ON CONFLICT (user_id, day) DO NOTHING
		`},
	}
	for _, st := range stmts {
		prepared, err := db.Prepare(st.query)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		*st.dst = prepared
	}

	log.Debug("sqlite store ready", zap.String("path", dbPath))
	return s, nil
}

func (s *SQLiteStore) Close() error {
	for _, st := range []*sql.Stmt{s.getStmt, s.upsertStmt, s.insertStmt} {
		if st != nil {
			_ = st.Close()
		}
	}

	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_assignments (
			user_id      TEXT    NOT NULL,
			day          TEXT    NOT NULL,
			species_id   INTEGER NOT NULL,
			shiny        INTEGER NOT NULL,
			created_at   INTEGER NOT NULL,
			PRIMARY KEY (user_id, day)
		);
	`)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, userID string, day lucky.Day) (lucky.Assignment, bool, error) {
	if s == nil || s.db == nil {
		return lucky.Assignment{}, false, errors.New("store not initialized")
	}

	var (
		speciesID   int
		shiny       bool
		createdUnix int64
	)
	err := s.getStmt.QueryRowContext(ctx, userID, day.String()).Scan(&speciesID, &shiny, &createdUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return lucky.Assignment{}, false, nil
	}
	if err != nil {
		return lucky.Assignment{}, false, err
	}

	return lucky.Assignment{
		UserID:    userID,
		Day:       day,
		SpeciesID: speciesID,
		Shiny:     shiny,
		CreatedAt: time.Unix(createdUnix, 0).UTC(),
	}, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, a lucky.Assignment) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialized")
	}

	_, err := s.upsertStmt.ExecContext(ctx, assignmentArgs(a)...)
	return err
}

func (s *SQLiteStore) PutIfAbsent(ctx context.Context, a lucky.Assignment) (lucky.Assignment, error) {
	if s == nil || s.db == nil {
		return lucky.Assignment{}, errors.New("store not initialized")
	}

	res, err := s.insertStmt.ExecContext(ctx, assignmentArgs(a)...)
	if err != nil {
		return lucky.Assignment{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		s.log.Debug("assignment already stored",
			zap.String("user", a.UserID), zap.Stringer("day", a.Day))
	}

	stored, ok, err := s.Get(ctx, a.UserID, a.Day)
	if err != nil {
		return lucky.Assignment{}, err
	}
	if !ok {
		return lucky.Assignment{}, fmt.Errorf("assignment for %s on %s vanished after insert", a.UserID, a.Day)
	}
	return stored, nil
}

func assignmentArgs(a lucky.Assignment) []any {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return []any{a.UserID, a.Day.String(), a.SpeciesID, a.Shiny, a.CreatedAt.Unix()}
}
