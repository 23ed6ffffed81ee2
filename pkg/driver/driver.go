package driver

import (
	"context"

	"github.com/tripwise/go-tripgraph/pkg/types"
)

// GraphDriver defines the interface for graph database operations.
// The write methods are the steps of a load run, in the order the
// loader executes them. Every write is an upsert: running a step
// twice with the same rows leaves the graph unchanged.
type GraphDriver interface {
	// Schema operations
	CreateConstraints(ctx context.Context) error

	// Entity upserts
	UpsertTravellers(ctx context.Context, travellers []types.Traveller) error
	UpsertHotels(ctx context.Context, hotels []types.Hotel) error

	// Graph construction
	BuildGeography(ctx context.Context, travellers []types.Traveller, hotels []types.Hotel) error
	IngestReviews(ctx context.Context, reviews []types.Review) error
	AggregateReviewScores(ctx context.Context) error
	ApplyVisaRules(ctx context.Context, rules []types.VisaRule) error

	// Read operations
	GetNodeProperties(ctx context.Context, ref NodeRef) (map[string]any, error)
	CountNodes(ctx context.Context, label string) (int64, error)
	CountRelationships(ctx context.Context, relType string) (int64, error)
	HasRelationship(ctx context.Context, from NodeRef, relType string, to NodeRef) (bool, error)
	GetStats(ctx context.Context) (*types.GraphStats, error)

	// Connection management
	Close(ctx context.Context) error
}

// NodeRef identifies a single node by label and one key property,
// e.g. {Traveller user_id u42} or {Country name France}.
type NodeRef struct {
	Label string
	Key   string
	Value string
}
