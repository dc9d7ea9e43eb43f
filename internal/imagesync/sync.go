package imagesync

import (
	"context"
	"log/slog"
	"path"
	"time"

	"github.com/scentdex/scentdex-server/internal/domain"
	"github.com/scentdex/scentdex-server/internal/id"
)

// Failure is one record whose image could not be fetched.
type Failure struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Report is the outcome of one download run.
// Existing files count as downloaded.
type Report struct {
	RunID      string
	Total      int
	Downloaded int
	Failed     int
	Skipped    int
	Mapping    map[int]string
	Failures   []Failure
}

// Syncer downloads each record's image into Storage, one record at a time.
type Syncer struct {
	storage      *Storage
	fetcher      *Fetcher
	ledger       *Ledger
	publicPrefix string
	logger       *slog.Logger
	now          func() time.Time
}

// NewSyncer creates a syncer. ledger may be nil.
func NewSyncer(storage *Storage, fetcher *Fetcher, ledger *Ledger, publicPrefix string, logger *slog.Logger) *Syncer {
	return &Syncer{
		storage:      storage,
		fetcher:      fetcher,
		ledger:       ledger,
		publicPrefix: publicPrefix,
		logger:       logger,
		now:          time.Now,
	}
}

// PublicPath is the URL path a stored file is served under.
func (s *Syncer) PublicPath(file string) string {
	return path.Join(s.publicPrefix, file)
}

// Run processes records in order. A failed record is logged and skipped;
// only context cancellation stops the run early, returning the partial report.
func (s *Syncer) Run(ctx context.Context, records []domain.Fragrance) (*Report, error) {
	report := &Report{
		RunID:   id.MustGenerate(id.PrefixRun),
		Total:   len(records),
		Mapping: make(map[int]string),
	}
	started := s.now()

	s.logger.Info("image download started",
		"run_id", report.RunID,
		"records", report.Total,
		"dir", s.storage.Dir(),
	)

	for i := range records {
		if err := ctx.Err(); err != nil {
			s.finish(report, started)
			return report, err
		}
		s.syncOne(ctx, report, &records[i])
	}

	s.finish(report, started)
	return report, nil
}

func (s *Syncer) syncOne(ctx context.Context, report *Report, rec *domain.Fragrance) {
	if rec.ImageURL == "" {
		report.Skipped++
		s.logger.Debug("no image url", "index", rec.ID, "name", rec.Name)
		return
	}

	file := FileName(rec.ID, rec.Name)
	entry := &Entry{
		Index:      rec.ID,
		Name:       rec.Name,
		SourceURL:  rec.ImageURL,
		File:       file,
		PublicPath: s.PublicPath(file),
		RunID:      report.RunID,
		UpdatedAt:  s.now(),
	}

	if s.storage.Exists(file) {
		entry.Status = StatusExisting
		report.Downloaded++
		report.Mapping[rec.ID] = entry.PublicPath
		s.record(entry)
		s.logger.Debug("image already present", "index", rec.ID, "file", file)
		return
	}

	img, err := s.fetcher.Fetch(ctx, rec.ImageURL)
	if err == nil {
		err = s.storage.Save(file, img.Data)
	}
	if err != nil {
		entry.Status = StatusFailed
		entry.Error = err.Error()
		entry.File, entry.PublicPath = "", ""
		report.Failed++
		report.Failures = append(report.Failures, Failure{
			Index: rec.ID,
			Name:  rec.Name,
			URL:   rec.ImageURL,
			Error: err.Error(),
		})
		s.record(entry)
		s.logger.Warn("image download failed",
			"index", rec.ID,
			"name", rec.Name,
			"url", rec.ImageURL,
			"error", err,
		)
		return
	}

	entry.Status = StatusDownloaded
	entry.Format = img.Format
	entry.Width = img.Width
	entry.Height = img.Height
	entry.Size = int64(len(img.Data))
	if hash, err := s.storage.Hash(file); err == nil {
		entry.SHA256 = hash
	}
	if img.Format != "" {
		if bh, err := BlurHash(img.Data); err != nil {
			s.logger.Debug("blurhash failed", "index", rec.ID, "error", err)
		} else {
			entry.BlurHash = bh
		}
	}

	report.Downloaded++
	report.Mapping[rec.ID] = entry.PublicPath
	s.record(entry)

	s.logger.Info("downloaded image",
		"index", rec.ID,
		"file", file,
		"size", entry.Size,
		"width", entry.Width,
		"height", entry.Height,
	)
}

func (s *Syncer) record(e *Entry) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.Put(e); err != nil {
		s.logger.Warn("failed to record ledger entry", "index", e.Index, "error", err)
	}
}

func (s *Syncer) finish(report *Report, started time.Time) {
	if s.ledger != nil {
		err := s.ledger.PutLastRun(&RunSummary{
			RunID:      report.RunID,
			Total:      report.Total,
			Downloaded: report.Downloaded,
			Failed:     report.Failed,
			Skipped:    report.Skipped,
			StartedAt:  started,
			FinishedAt: s.now(),
		})
		if err != nil {
			s.logger.Warn("failed to record run summary", "run_id", report.RunID, "error", err)
		}
	}

	s.logger.Info("image download finished",
		"run_id", report.RunID,
		"downloaded", report.Downloaded,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"total", report.Total,
		"duration", s.now().Sub(started),
	)
}
