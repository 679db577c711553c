package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/pool-portal/internal/models"
)

const (
	historyFile = "history.csv"
	updatesFile = "updates.csv"
	commentFile = "comment.txt"
)

var (
	historyHeader = []string{"id", "drawn_at", "result"}
	updatesHeader = []string{"id", "date", "body"}
)

// FlatFileStore keeps the portal's three stores as flat files under one data
// directory: history.csv, updates.csv and comment.txt. Every write rewrites
// the whole file, matching the bulk replace-on-edit semantics of the admin
// screen. A single mutex serializes access; the dataset is small enough that
// this is never a bottleneck.
type FlatFileStore struct {
	dataDir string
	mu      sync.Mutex
}

// NewFlatFileStore creates the data directory and seeds empty files with
// headers so a fresh deployment starts from a valid, empty history.
func NewFlatFileStore(dataDir string) (*FlatFileStore, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &FlatFileStore{dataDir: dataDir}
	if err := s.ensureCSV(historyFile, historyHeader); err != nil {
		return nil, err
	}
	if err := s.ensureCSV(updatesFile, updatesHeader); err != nil {
		return nil, err
	}
	return s, nil
}

// Outcomes returns the outcome history repository view of the store.
func (s *FlatFileStore) Outcomes() OutcomeRepository { return &flatFileOutcomes{store: s} }

// Updates returns the changelog repository view of the store.
func (s *FlatFileStore) Updates() UpdateRepository { return &flatFileUpdates{store: s} }

// Comment returns the admin comment repository view of the store.
func (s *FlatFileStore) Comment() CommentRepository { return &flatFileComment{store: s} }

// Ping verifies the data directory is still reachable.
func (s *FlatFileStore) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.dataDir); err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	return nil
}

func (s *FlatFileStore) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

func (s *FlatFileStore) ensureCSV(name string, header []string) error {
	path := s.path(name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return s.writeCSV(name, header, nil)
}

func (s *FlatFileStore) readCSV(name string) ([][]string, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	// Drop the header row
	return rows[1:], nil
}

// writeCSV replaces the file in one shot, going through a temp file so a
// crash mid-write never leaves a truncated store behind.
func (s *FlatFileStore) writeCSV(name string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(s.dataDir, name+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// flatFileOutcomes stores the draw history in history.csv.
type flatFileOutcomes struct {
	store *FlatFileStore
}

func (r *flatFileOutcomes) List(ctx context.Context) ([]*models.OutcomeRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.load()
}

func (r *flatFileOutcomes) Count(ctx context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (r *flatFileOutcomes) Append(ctx context.Context, record *models.OutcomeRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}
	return r.save(append(records, record))
}

func (r *flatFileOutcomes) ReplaceAll(ctx context.Context, records []*models.OutcomeRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.save(records)
}

func (r *flatFileOutcomes) load() ([]*models.OutcomeRecord, error) {
	rows, err := r.store.readCSV(historyFile)
	if err != nil {
		return nil, err
	}

	records := make([]*models.OutcomeRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("malformed history row %q", strings.Join(row, ","))
		}
		id, err := parseOrNewID(row[0])
		if err != nil {
			return nil, fmt.Errorf("malformed history id %q: %w", row[0], err)
		}
		drawnAt, err := time.Parse(time.RFC3339, row[1])
		if err != nil {
			return nil, fmt.Errorf("malformed history timestamp %q: %w", row[1], err)
		}
		records = append(records, &models.OutcomeRecord{
			ID:      id,
			DrawnAt: drawnAt,
			Result:  models.Category(row[2]),
		})
	}
	models.SortOutcomesByDrawTime(records)
	return records, nil
}

func (r *flatFileOutcomes) save(records []*models.OutcomeRecord) error {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			record.ID.String(),
			record.DrawnAt.Format(time.RFC3339),
			string(record.Result),
		}
	}
	return r.store.writeCSV(historyFile, historyHeader, rows)
}

// flatFileUpdates stores the changelog in updates.csv.
type flatFileUpdates struct {
	store *FlatFileStore
}

func (r *flatFileUpdates) List(ctx context.Context) ([]*models.UpdateEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.load()
}

func (r *flatFileUpdates) Append(ctx context.Context, entry *models.UpdateEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return err
	}
	return r.save(append(entries, entry))
}

func (r *flatFileUpdates) ReplaceAll(ctx context.Context, entries []*models.UpdateEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.save(entries)
}

func (r *flatFileUpdates) load() ([]*models.UpdateEntry, error) {
	rows, err := r.store.readCSV(updatesFile)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.UpdateEntry, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("malformed update row %q", strings.Join(row, ","))
		}
		id, err := parseOrNewID(row[0])
		if err != nil {
			return nil, fmt.Errorf("malformed update id %q: %w", row[0], err)
		}
		date, err := time.Parse(time.RFC3339, row[1])
		if err != nil {
			return nil, fmt.Errorf("malformed update date %q: %w", row[1], err)
		}
		entries = append(entries, &models.UpdateEntry{
			ID:   id,
			Date: date,
			Body: row[2],
		})
	}
	return entries, nil
}

func (r *flatFileUpdates) save(entries []*models.UpdateEntry) error {
	rows := make([][]string, len(entries))
	for i, entry := range entries {
		rows[i] = []string{
			entry.ID.String(),
			entry.Date.Format(time.RFC3339),
			entry.Body,
		}
	}
	return r.store.writeCSV(updatesFile, updatesHeader, rows)
}

// flatFileComment stores the admin comment in comment.txt.
type flatFileComment struct {
	store *FlatFileStore
}

func (r *flatFileComment) Get(ctx context.Context) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	data, err := os.ReadFile(r.store.path(commentFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read comment: %w", err)
	}
	return string(data), nil
}

func (r *flatFileComment) Set(ctx context.Context, body string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := os.WriteFile(r.store.path(commentFile), []byte(body), 0o644); err != nil {
		return fmt.Errorf("failed to write comment: %w", err)
	}
	return nil
}

// parseOrNewID tolerates hand-edited files with blank IDs.
func parseOrNewID(raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(raw)
}
