package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/tliron/commonlog"

	_ "modernc.org/sqlite"
)

var log = commonlog.GetLogger("vcpu.snapshot")

// ErrNotFound indicates the requested snapshot doesn't exist
var ErrNotFound = errors.New("snapshot not found")

const idPrefix = "snap"

// cacheSize is how many decoded snapshots a Store keeps in memory.
const cacheSize = 64

// Info describes a stored snapshot without its payload.
type Info struct {
	ID      string
	Name    string
	Kind    Kind
	Steps   uint64
	Created time.Time
}

// Store keeps snapshots in a SQLite database
type Store struct {
	db     *sql.DB
	dbPath string
	cache  *lru.Cache // ID -> *Envelope
	mu     sync.Mutex
}

// Open opens (creating if needed) the store at dbPath
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		steps INTEGER NOT NULL,
		created INTEGER NOT NULL,
		data BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	cache, err := lru.New(cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache: %w", err)
	}

	return &Store{db: db, dbPath: dbPath, cache: cache}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.dbPath }

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores e under name and returns the new snapshot's ID. Names need not
// be unique; loading by name picks the most recent.
func (s *Store) Save(name string, e *Envelope) (string, error) {
	data, err := Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := idPrefix + "_" + uuid.New().String()
	_, err = s.db.Exec(
		"INSERT INTO snapshots (id, name, kind, steps, created, data) VALUES (?, ?, ?, ?, ?, ?)",
		id, name, string(e.Kind), int64(e.Steps()), time.Now().UnixNano(), data,
	)
	if err != nil {
		return "", fmt.Errorf("saving snapshot: %w", err)
	}

	log.Debugf("saved %s snapshot %s (%s, %d bytes)", e.Kind, id, name, len(data))
	return id, nil
}

// Load retrieves a snapshot by ID, or the newest snapshot with that name.
// The returned envelope may be shared with later Load calls and must not be
// modified.
func (s *Store) Load(ref string) (*Envelope, error) {
	// Check if already decoded
	if e, ok := s.cache.Get(ref); ok {
		return e.(*Envelope), nil
	}

	var id string
	var data []byte
	err := s.db.QueryRow(
		"SELECT id, data FROM snapshots WHERE id = ? OR name = ? ORDER BY id = ? DESC, created DESC, rowid DESC LIMIT 1",
		ref, ref, ref,
	).Scan(&id, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}

	e, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	s.cache.Add(id, e)
	return e, nil
}

// List returns every stored snapshot, oldest first.
func (s *Store) List() ([]Info, error) {
	rows, err := s.db.Query("SELECT id, name, kind, steps, created FROM snapshots ORDER BY created, rowid")
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []Info
	for rows.Next() {
		var info Info
		var kind string
		var steps, created int64
		if err := rows.Scan(&info.ID, &info.Name, &kind, &steps, &created); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		info.Kind = Kind(kind)
		info.Steps = uint64(steps)
		info.Created = time.Unix(0, created)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes a snapshot by ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(id)
	res, err := s.db.Exec("DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
