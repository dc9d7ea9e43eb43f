package imagesync

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	entryPrefix = "img:"
	lastRunKey  = "run:last"
)

// Status is the outcome recorded for one record.
type Status string

// Download outcomes.
const (
	StatusDownloaded Status = "downloaded"
	StatusExisting   Status = "existing"
	StatusFailed     Status = "failed"
)

// Entry is the ledger row for one catalog index.
type Entry struct {
	Index      int       `json:"index"`
	Name       string    `json:"name"`
	SourceURL  string    `json:"source_url"`
	File       string    `json:"file,omitempty"`
	PublicPath string    `json:"public_path,omitempty"`
	Format     string    `json:"format,omitempty"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	Size       int64     `json:"size,omitempty"`
	SHA256     string    `json:"sha256,omitempty"`
	BlurHash   string    `json:"blurhash,omitempty"`
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	RunID      string    `json:"run_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RunSummary is the headline of the most recent run.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Total      int       `json:"total"`
	Downloaded int       `json:"downloaded"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Ledger persists per-record download results across runs in badger.
type Ledger struct {
	db *badger.DB
}

// OpenLedger opens or creates the ledger at path.
func OpenLedger(path string) (*Ledger, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true
	return openLedger(opts)
}

// OpenMemoryLedger opens a ledger that lives only in memory.
func OpenMemoryLedger() (*Ledger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openLedger(opts)
}

func openLedger(opts badger.Options) (*Ledger, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func entryKey(index int) []byte {
	return fmt.Appendf(nil, "%s%08d", entryPrefix, index)
}

// Put records e, replacing any earlier entry for the same index.
func (l *Ledger) Put(e *Entry) error {
	return l.set(entryKey(e.Index), e)
}

// Get returns the entry for index. ok is false when none was recorded.
func (l *Ledger) Get(index int) (e *Entry, ok bool, err error) {
	e = &Entry{}
	ok, err = l.get(entryKey(index), e)
	if !ok {
		e = nil
	}
	return e, ok, err
}

// All returns every entry in index order. Undecodable rows are skipped.
func (l *Ledger) All() ([]*Entry, error) {
	prefix := []byte(entryPrefix)
	var entries []*Entry

	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var e Entry
				if json.Unmarshal(val, &e) != nil {
					return nil
				}
				entries = append(entries, &e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return entries, nil
}

// Counts tallies the recorded entries by status.
func (l *Ledger) Counts() (map[Status]int, error) {
	entries, err := l.All()
	if err != nil {
		return nil, err
	}
	counts := make(map[Status]int, 3)
	for _, e := range entries {
		counts[e.Status]++
	}
	return counts, nil
}

// PutLastRun stores the summary of the run that just finished.
func (l *Ledger) PutLastRun(s *RunSummary) error {
	return l.set([]byte(lastRunKey), s)
}

// LastRun returns the most recent run summary, or nil when no run was recorded.
func (l *Ledger) LastRun() (*RunSummary, error) {
	var s RunSummary
	ok, err := l.get([]byte(lastRunKey), &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (l *Ledger) set(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

func (l *Ledger) get(key []byte, v any) (bool, error) {
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	return true, nil
}
