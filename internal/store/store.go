// Package store persists voice contribution records.
package store

import (
	"context"
	"time"
)

// Status is a contribution record's lifecycle state.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

// Contribution is one user-submitted voice sample as it moves through the
// ingestion pipeline. The pipeline owns the record until Persist commits it.
type Contribution struct {
	ID        string
	Uploader  string
	Character string
	Filename  string
	SizeBytes int64
	Format    string

	// Seed is the voice fingerprint extracted from the sample.
	Seed string

	// Acoustic features from the analysis stage.
	Pitch   float64
	Tempo   float64
	Valence float64
	Arousal float64

	// Normalized taxonomy.
	Tone      string
	Energy    string
	Formality string

	Status    Status
	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContributionStore is the persistence boundary of the ingestion pipeline.
type ContributionStore interface {
	Create(ctx context.Context, c *Contribution) error
	Update(ctx context.Context, c *Contribution) error
	Get(ctx context.Context, id string) (*Contribution, error)
	List(ctx context.Context, status Status, limit int) ([]*Contribution, error)
}
