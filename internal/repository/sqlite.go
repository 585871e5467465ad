package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/mbellini/tastevin/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS participants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			editor BOOLEAN DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			code TEXT UNIQUE NOT NULL,
			pin TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'registration',
			owner_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (owner_id) REFERENCES participants(id)
		)`,
		`CREATE TABLE IF NOT EXISTS wines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id INTEGER NOT NULL,
			owner_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			producer TEXT,
			year INTEGER,
			price REAL,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (event_id) REFERENCES events(id),
			FOREIGN KEY (owner_id) REFERENCES participants(id)
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id INTEGER NOT NULL,
			wine_id INTEGER NOT NULL,
			participant_id INTEGER NOT NULL,
			score_tenths INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (event_id) REFERENCES events(id),
			FOREIGN KEY (wine_id) REFERENCES wines(id),
			FOREIGN KEY (participant_id) REFERENCES participants(id),
			UNIQUE(wine_id, participant_id)
		)`,
		`CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id INTEGER UNIQUE NOT NULL,
			payload TEXT NOT NULL,
			generated_by INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (event_id) REFERENCES events(id),
			FOREIGN KEY (generated_by) REFERENCES participants(id)
		)`,
		`CREATE TABLE IF NOT EXISTS pagelle (
			event_id INTEGER PRIMARY KEY,
			text TEXT NOT NULL DEFAULT '',
			version INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (event_id) REFERENCES events(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wines_event ON wines(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_wines_owner ON wines(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_event ON ratings(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_participant ON ratings(participant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_code ON events(code)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// isUniqueViolation reports whether err is a sqlite uniqueness constraint error
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// ==================== Participant Methods ====================

// CreateParticipant creates a new participant
func (r *Repository) CreateParticipant(ctx context.Context, name string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `INSERT INTO participants (name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetParticipant retrieves a participant by ID
func (r *Repository) GetParticipant(ctx context.Context, id int) (*models.Participant, error) {
	var p models.Participant
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, editor FROM participants WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Editor)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListParticipants returns all registered participants
func (r *Repository) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, editor FROM participants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Editor); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// SetParticipantEditor sets the pagella editor role for a participant
func (r *Repository) SetParticipantEditor(ctx context.Context, id int, editor bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE participants SET editor = ? WHERE id = ?`, editor, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEventParticipants returns the distinct owners of wines in an event,
// ordered by participant id. Participants without a wine do not appear.
func (r *Repository) ListEventParticipants(ctx context.Context, eventID int) ([]models.Participant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT p.id, p.name, p.editor
		FROM participants p
		JOIN wines w ON w.owner_id = p.id
		WHERE w.event_id = ?
		ORDER BY p.id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Editor); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// ==================== Event Methods ====================

// CreateEvent creates a new event in registration status.
// An empty pagella row is created alongside so autosave always has a target.
func (r *Repository) CreateEvent(ctx context.Context, name, code, pin string, ownerID int) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO events (name, code, pin, owner_id, status) VALUES (?, ?, ?, ?, 'registration')`,
		name, code, pin, ownerID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO pagelle (event_id) VALUES (?)`, id); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func scanEvent(row *sql.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Name, &e.Code, &e.Status, &e.OwnerID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetEvent retrieves an event by ID
func (r *Repository) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	return scanEvent(r.db.QueryRowContext(ctx,
		`SELECT id, name, code, status, owner_id FROM events WHERE id = ?`, id))
}

// GetEventByCode retrieves an event by its join code
func (r *Repository) GetEventByCode(ctx context.Context, code string) (*models.Event, error) {
	return scanEvent(r.db.QueryRowContext(ctx,
		`SELECT id, name, code, status, owner_id FROM events WHERE code = ?`, code))
}

// GetEventPIN returns the organizer PIN for an event
func (r *Repository) GetEventPIN(ctx context.Context, id int) (string, error) {
	var pin string
	err := r.db.QueryRowContext(ctx, `SELECT pin FROM events WHERE id = ?`, id).Scan(&pin)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return pin, err
}

// SetEventStatus updates the lifecycle status of an event
func (r *Repository) SetEventStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE events SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ==================== Wine Methods ====================

// CreateWine creates a new wine entry
func (r *Repository) CreateWine(ctx context.Context, wine models.WineEntry) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO wines (event_id, owner_id, name, producer, year, price, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, wine.EventID, wine.OwnerID, wine.Name, wine.Producer, wine.Year, wine.Price, wine.Notes)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetWine retrieves a wine entry by ID
func (r *Repository) GetWine(ctx context.Context, id int) (*models.WineEntry, error) {
	var w models.WineEntry
	var producer, notes sql.NullString
	var year sql.NullInt64
	var price sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, event_id, owner_id, name, producer, year, price, notes
		FROM wines WHERE id = ?
	`, id).Scan(&w.ID, &w.EventID, &w.OwnerID, &w.Name, &producer, &year, &price, &notes)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	w.Producer = producer.String
	w.Year = int(year.Int64)
	w.Price = price.Float64
	w.Notes = notes.String
	return &w, nil
}

// ListEventWines returns all wines for an event ordered by id
func (r *Repository) ListEventWines(ctx context.Context, eventID int) ([]models.WineEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, owner_id, name, producer, year, price, notes
		FROM wines WHERE event_id = ? ORDER BY id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wines []models.WineEntry
	for rows.Next() {
		var w models.WineEntry
		var producer, notes sql.NullString
		var year sql.NullInt64
		var price sql.NullFloat64
		if err := rows.Scan(&w.ID, &w.EventID, &w.OwnerID, &w.Name, &producer, &year, &price, &notes); err != nil {
			return nil, err
		}
		w.Producer = producer.String
		w.Year = int(year.Int64)
		w.Price = price.Float64
		w.Notes = notes.String
		wines = append(wines, w)
	}
	return wines, rows.Err()
}

// UpdateWine updates a wine entry's descriptive attributes
func (r *Repository) UpdateWine(ctx context.Context, wine models.WineEntry) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE wines SET name = ?, producer = ?, year = ?, price = ?, notes = ?
		WHERE id = ?
	`, wine.Name, wine.Producer, wine.Year, wine.Price, wine.Notes, wine.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWine deletes a wine entry
func (r *Repository) DeleteWine(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM wines WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ==================== Rating Methods ====================

// SaveRating saves or overwrites a rating for a (wine, participant) pair
func (r *Repository) SaveRating(ctx context.Context, eventID, wineID, participantID, scoreTenths int) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ratings (event_id, wine_id, participant_id, score_tenths, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(wine_id, participant_id) DO UPDATE SET
			score_tenths = excluded.score_tenths,
			updated_at = excluded.updated_at
	`, eventID, wineID, participantID, scoreTenths, now, now)
	return err
}

// ListEventRatings returns all ratings for an event
func (r *Repository) ListEventRatings(ctx context.Context, eventID int) ([]models.Rating, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id, wine_id, participant_id, score_tenths
		FROM ratings WHERE event_id = ? ORDER BY wine_id, participant_id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var rt models.Rating
		var tenths int
		if err := rows.Scan(&rt.EventID, &rt.WineID, &rt.ParticipantID, &tenths); err != nil {
			return nil, err
		}
		rt.Score = float64(tenths) / 10
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

// GetParticipantRatings returns wine_id -> score for one participant in an event
func (r *Repository) GetParticipantRatings(ctx context.Context, eventID, participantID int) (map[int]float64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT wine_id, score_tenths FROM ratings
		WHERE event_id = ? AND participant_id = ?
	`, eventID, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make(map[int]float64)
	for rows.Next() {
		var wineID, tenths int
		if err := rows.Scan(&wineID, &tenths); err != nil {
			return nil, err
		}
		ratings[wineID] = float64(tenths) / 10
	}
	return ratings, rows.Err()
}

// CountEventRatings returns the number of rating rows for an event
func (r *Repository) CountEventRatings(ctx context.Context, eventID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ratings WHERE event_id = ?`, eventID).Scan(&count)
	return count, err
}

// ==================== Report Methods ====================

// CreateReport persists the report payload and transitions the event to
// completed in one transaction. The UNIQUE constraint on event_id is the
// single-commit guard: a concurrent second insert fails with ErrDuplicate
// and the status update rolls back with it.
func (r *Repository) CreateReport(ctx context.Context, eventID int, payload []byte, generatedBy int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reports (event_id, payload, generated_by) VALUES (?, ?, ?)`,
		eventID, string(payload), generatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE events SET status = ? WHERE id = ?`, models.StatusCompleted, eventID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetReport returns the stored report payload verbatim
func (r *Repository) GetReport(ctx context.Context, eventID int) (json.RawMessage, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM reports WHERE event_id = ?`, eventID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}

// ReportExists reports whether a report has been generated for an event
func (r *Repository) ReportExists(ctx context.Context, eventID int) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reports WHERE event_id = ?`, eventID).Scan(&count)
	return count > 0, err
}

// ==================== Pagella Methods ====================

// GetPagella returns the pagella sheet for an event
func (r *Repository) GetPagella(ctx context.Context, eventID int) (*models.Pagella, error) {
	var p models.Pagella
	err := r.db.QueryRowContext(ctx,
		`SELECT event_id, text, version FROM pagelle WHERE event_id = ?`, eventID).
		Scan(&p.EventID, &p.Text, &p.Version)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePagella writes the pagella text if the caller's version is current
func (r *Repository) SavePagella(ctx context.Context, eventID int, text string, version int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE pagelle SET text = ?, version = version + 1, updated_at = ?
		WHERE event_id = ? AND version = ?
	`, text, time.Now(), eventID, version)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the event has no pagella row or the version is stale
		var current int
		err := r.db.QueryRowContext(ctx,
			`SELECT version FROM pagelle WHERE event_id = ?`, eventID).Scan(&current)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return ErrStaleVersion
	}
	return nil
}
