package flickrwarc

import (
	"context"
	"time"
)

// Run describes one conversion of an archive into an output file.
type Run struct {
	ID         string    `json:"id"`
	InputPath  string    `json:"inputPath"`
	OutputPath string    `json:"outputPath"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	Records         int `json:"records"`
	Ignored         int `json:"ignored"`
	Filtered        int `json:"filtered"`
	MetadataUpdated int `json:"metadataUpdated"`
	Emitted         int `json:"emitted"`
	Rejected        int `json:"rejected"`
	Pending         int `json:"pending"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.InputPath == "" {
		return Errorf(EINVALID, "run input path required")
	}
	if r.OutputPath == "" {
		return Errorf(EINVALID, "run output path required")
	}
	return nil
}

// ManifestEntry indexes one example written to the output file.
type ManifestEntry struct {
	RunID       string `json:"runId"`
	Position    int    `json:"position"`
	ImgSrc      string `json:"imgSrc"`
	Title       string `json:"title"`
	Owner       string `json:"owner"`
	License     string `json:"license"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int    `json:"size"`
	ContentHash string `json:"contentHash"`
}

// ManifestService records runs and the examples they emitted.
type ManifestService interface {
	// CreateRun assigns an ID and start time and stores the run.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stores the final counts and finish time of a run.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// CreateEntry indexes one emitted example.
	CreateEntry(ctx context.Context, entry *ManifestEntry) error

	// FindEntries returns the entries of a run in output order.
	FindEntries(ctx context.Context, runID string) ([]*ManifestEntry, error)
}
