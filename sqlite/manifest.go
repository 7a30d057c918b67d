package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/flickrwarc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ flickrwarc.ManifestService = (*ManifestService)(nil)

// ManifestService implements flickrwarc.ManifestService using SQLite.
type ManifestService struct {
	db *DB
}

// NewManifestService creates a new ManifestService.
func NewManifestService(db *DB) *ManifestService {
	return &ManifestService{db: db}
}

// HashContent computes the xxHash of an image payload as a hex string.
func HashContent(b []byte) string {
	var sum [8]byte
	binary.BigEndian.PutUint64(sum[:], xxhash.Sum64(b))
	return hex.EncodeToString(sum[:])
}

// CreateRun creates a new run.
func (s *ManifestService) CreateRun(ctx context.Context, run *flickrwarc.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, input_path, output_path, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.InputPath, run.OutputPath, formatRFC3339(run.StartedAt))

	return err
}

// FinishRun stores the final counts of a run.
func (s *ManifestService) FinishRun(ctx context.Context, run *flickrwarc.Run) error {
	run.FinishedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE runs SET
			finished_at = ?, records = ?, ignored = ?, filtered = ?,
			metadata_updated = ?, emitted = ?, rejected = ?, pending = ?
		WHERE id = ?
	`, formatRFC3339(run.FinishedAt), run.Records, run.Ignored, run.Filtered,
		run.MetadataUpdated, run.Emitted, run.Rejected, run.Pending, run.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return flickrwarc.Errorf(flickrwarc.ENOTFOUND, "run not found")
	}
	return nil
}

// FindRunByID retrieves a run by ID.
func (s *ManifestService) FindRunByID(ctx context.Context, id string) (*flickrwarc.Run, error) {
	var run flickrwarc.Run
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, input_path, output_path, started_at, finished_at,
			records, ignored, filtered, metadata_updated, emitted, rejected, pending
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.InputPath, &run.OutputPath, &startedAt, &finishedAt,
		&run.Records, &run.Ignored, &run.Filtered, &run.MetadataUpdated,
		&run.Emitted, &run.Rejected, &run.Pending)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, flickrwarc.Errorf(flickrwarc.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}

// CreateEntry indexes one emitted example.
func (s *ManifestService) CreateEntry(ctx context.Context, entry *flickrwarc.ManifestEntry) error {
	if entry.RunID == "" {
		return flickrwarc.Errorf(flickrwarc.EINVALID, "manifest entry run ID required")
	}
	if entry.ImgSrc == "" {
		return flickrwarc.Errorf(flickrwarc.EINVALID, "manifest entry image URL required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO examples (run_id, position, img_src, title, owner, license, width, height, size, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.RunID, entry.Position, entry.ImgSrc, entry.Title, entry.Owner, entry.License,
		entry.Width, entry.Height, entry.Size, entry.ContentHash)

	return err
}

// FindEntries returns the entries of a run ordered by output position.
func (s *ManifestService) FindEntries(ctx context.Context, runID string) ([]*flickrwarc.ManifestEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, position, img_src, title, owner, license, width, height, size, content_hash
		FROM examples
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*flickrwarc.ManifestEntry
	for rows.Next() {
		var e flickrwarc.ManifestEntry
		if err := rows.Scan(&e.RunID, &e.Position, &e.ImgSrc, &e.Title, &e.Owner, &e.License,
			&e.Width, &e.Height, &e.Size, &e.ContentHash); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
