package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store manages the SQLite database of past confirmations
type Store struct {
	db     *sql.DB
	hasFTS bool
}

// NewStore opens (or creates) the history database
func NewStore(dbPath string) (*Store, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{db: db}

	// Initialize schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates the database schema
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS confirmations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id TEXT UNIQUE NOT NULL,
		message TEXT NOT NULL,
		project_name TEXT,
		cwd TEXT,
		section_count INTEGER NOT NULL DEFAULT 0,
		confirmed INTEGER NOT NULL,
		selected_sections TEXT,
		user_input TEXT,
		image_count INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_confirmations_created ON confirmations(created_at);
	CREATE INDEX IF NOT EXISTS idx_confirmations_project ON confirmations(project_name);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Try to create FTS5 table (optional, for full-text search)
	ftsSchema := `
	CREATE VIRTUAL TABLE IF NOT EXISTS confirmations_fts USING fts5(
		message,
		user_input,
		content=confirmations,
		content_rowid=id
	);

	CREATE TRIGGER IF NOT EXISTS confirmations_ai AFTER INSERT ON confirmations BEGIN
		INSERT INTO confirmations_fts(rowid, message, user_input)
		VALUES (new.id, new.message, new.user_input);
	END;

	CREATE TRIGGER IF NOT EXISTS confirmations_ad AFTER DELETE ON confirmations BEGIN
		INSERT INTO confirmations_fts(confirmations_fts, rowid, message, user_input)
		VALUES ('delete', old.id, old.message, old.user_input);
	END;
	`

	// FTS5 is optional - if it fails, Search falls back to LIKE
	if _, err := s.db.Exec(ftsSchema); err == nil {
		s.hasFTS = true
	}

	return nil
}

// Record stores a completed confirmation
func (s *Store) Record(entry Entry) (*Entry, error) {
	if entry.Selected == nil {
		entry.Selected = []int{}
	}
	selectedJSON, err := json.Marshal(entry.Selected)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal selection: %w", err)
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	result, err := s.db.Exec(`
		INSERT INTO confirmations (request_id, message, project_name, cwd, section_count, confirmed,
			selected_sections, user_input, image_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.RequestID, entry.Message, entry.ProjectName, entry.Cwd, entry.SectionCount, entry.Confirmed,
		string(selectedJSON), entry.UserInput, entry.ImageCount, entry.DurationMS, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert confirmation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	entry.ID = int(id)

	return &entry, nil
}

const selectColumns = `SELECT c.id, c.request_id, c.message, c.project_name, c.cwd, c.section_count, c.confirmed,
	c.selected_sections, c.user_input, c.image_count, c.duration_ms, c.created_at FROM confirmations c`

// Get retrieves a confirmation by request id
func (s *Store) Get(requestID string) (*Entry, error) {
	row := s.db.QueryRow(selectColumns+` WHERE c.request_id = ?`, requestID)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("confirmation not found: %s", requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query confirmation: %w", err)
	}
	return entry, nil
}

// List returns the most recent confirmations, newest first
func (s *Store) List(limit int) ([]Entry, error) {
	query := selectColumns + ` ORDER BY c.created_at DESC, c.id DESC`
	args := []interface{}{}

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query confirmations: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan confirmation: %w", err)
		}
		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

// Search finds confirmations whose message or user input matches query
func (s *Store) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.hasFTS {
		results, err := s.searchFTS(query, limit)
		if err == nil {
			return results, nil
		}
		// malformed FTS query syntax; retry as a plain substring match
	}

	return s.searchLike(query, limit)
}

func (s *Store) searchFTS(query string, limit int) ([]SearchResult, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.request_id, c.message, c.project_name, c.cwd, c.section_count, c.confirmed,
			c.selected_sections, c.user_input, c.image_count, c.duration_ms, c.created_at, bm25(confirmations_fts)
		FROM confirmations_fts
		JOIN confirmations c ON c.id = confirmations_fts.rowid
		WHERE confirmations_fts MATCH ?
		ORDER BY bm25(confirmations_fts)
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []SearchResult{}
	for rows.Next() {
		var rank float64
		entry, err := scanEntry(rows, &rank)
		if err != nil {
			return nil, err
		}
		results = append(results, SearchResult{Entry: *entry, Rank: rank})
	}
	return results, rows.Err()
}

func (s *Store) searchLike(query string, limit int) ([]SearchResult, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.Query(selectColumns+`
		WHERE c.message LIKE ? OR c.user_input LIKE ?
		ORDER BY c.created_at DESC
		LIMIT ?
	`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search confirmations: %w", err)
	}
	defer rows.Close()

	results := []SearchResult{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan confirmation: %w", err)
		}
		results = append(results, SearchResult{Entry: *entry})
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner, extra ...interface{}) (*Entry, error) {
	var entry Entry
	var projectName, cwd, selectedJSON, userInput sql.NullString

	dest := []interface{}{
		&entry.ID, &entry.RequestID, &entry.Message, &projectName, &cwd, &entry.SectionCount, &entry.Confirmed,
		&selectedJSON, &userInput, &entry.ImageCount, &entry.DurationMS, &entry.CreatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	entry.ProjectName = projectName.String
	entry.Cwd = cwd.String
	entry.UserInput = userInput.String

	if err := json.Unmarshal([]byte(selectedJSON.String), &entry.Selected); err != nil {
		entry.Selected = []int{}
	}

	return &entry, nil
}
