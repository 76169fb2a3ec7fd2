package diagram

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// Store persists rasterized diagrams as PNG blobs keyed by content hash so
// repeated sessions skip the render entirely.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// OpenStore opens or creates the raster cache. Use ":memory:" for an
// in-memory database, or a file path for persistent storage.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS diagrams (
		hash TEXT PRIMARY KEY,
		png BLOB NOT NULL,
		width REAL NOT NULL,
		height REAL NOT NULL,
		created INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Put stores a rendered raster under its content hash, replacing any
// previous entry.
func (s *Store) Put(hash string, img *Raster) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Pixels); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO diagrams (hash, png, width, height, created) VALUES (?, ?, ?, ?, ?)",
		hash, buf.Bytes(), img.Logical.W, img.Logical.H, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert diagram: %w", err)
	}
	return nil
}

// Get loads a cached raster, or (nil, nil) when the hash is unknown.
func (s *Store) Get(hash string) (*Raster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blob []byte
	var w, h float64
	err := s.db.QueryRow(
		"SELECT png, width, height FROM diagrams WHERE hash = ?", hash,
	).Scan(&blob, &w, &h)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query diagram: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(img.Bounds())
		for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
			for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
				nrgba.Set(x, y, img.At(x, y))
			}
		}
	}

	return &Raster{
		Pixels:  nrgba,
		Logical: ui.Size{W: float32(w), H: float32(h)},
	}, nil
}

// Delete removes a cached raster.
func (s *Store) Delete(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM diagrams WHERE hash = ?", hash)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
