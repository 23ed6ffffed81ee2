package tripgraph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tripwise/go-tripgraph/pkg/dataset"
	"github.com/tripwise/go-tripgraph/pkg/driver"
	"github.com/tripwise/go-tripgraph/pkg/types"
)

// Loader is the main interface for materializing a travel knowledge
// graph from a loaded dataset. One call to Load performs a complete
// run; running it again with the same dataset leaves the graph
// unchanged.
type Loader interface {
	// Load runs the full write sequence for the dataset and reports
	// what the graph looks like afterwards.
	Load(ctx context.Context, data *dataset.Dataset) (*LoadResult, error)

	// Stats returns current node and relationship counts by label
	// and type.
	Stats(ctx context.Context) (*types.GraphStats, error)

	// Close closes the underlying database connection.
	Close(ctx context.Context) error
}

// Client is the main implementation of the Loader interface.
type Client struct {
	driver driver.GraphDriver
	logger *slog.Logger
}

var _ Loader = (*Client)(nil)

// NewClient creates a new loader client on top of a graph driver.
// A nil logger falls back to slog.Default.
func NewClient(d driver.GraphDriver, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		driver: d,
		logger: logger,
	}
}

// LoadResult summarizes one completed load run.
type LoadResult struct {
	// RunID identifies the run in log output.
	RunID string
	// StartedAt is when the run began.
	StartedAt time.Time
	// Duration is the total wall time of the run.
	Duration time.Duration
	// Stats holds the node and relationship counts after the run.
	Stats *types.GraphStats
}

// Load materializes the dataset as a property graph. The steps run in
// a fixed order because later steps match nodes created by earlier
// ones: geography needs travellers and hotels, reviews need both, the
// aggregate needs review edges and visa rules need countries. The
// first failing step aborts the run; completed steps stay committed
// and a rerun converges on the same graph.
func (c *Client) Load(ctx context.Context, data *dataset.Dataset) (*LoadResult, error) {
	if data == nil {
		return nil, ErrNoDataset
	}

	runID := uuid.New().String()
	log := c.logger.With("run_id", runID)
	startedAt := time.Now()

	log.Info("starting graph load",
		"travellers", len(data.Travellers),
		"hotels", len(data.Hotels),
		"reviews", len(data.Reviews),
		"visa_rules", len(data.VisaRules))

	// 1. Declare the uniqueness constraints behind every MERGE key
	if err := c.runStep(ctx, log, "create constraints", c.driver.CreateConstraints); err != nil {
		return nil, err
	}

	// 2. Traveller nodes
	if err := c.runStep(ctx, log, "upsert travellers", func(ctx context.Context) error {
		return c.driver.UpsertTravellers(ctx, data.Travellers)
	}); err != nil {
		return nil, err
	}

	// 3. Hotel nodes
	if err := c.runStep(ctx, log, "upsert hotels", func(ctx context.Context) error {
		return c.driver.UpsertHotels(ctx, data.Hotels)
	}); err != nil {
		return nil, err
	}

	// 4. Country and City nodes plus location and origin edges
	if err := c.runStep(ctx, log, "build geography", func(ctx context.Context) error {
		return c.driver.BuildGeography(ctx, data.Travellers, data.Hotels)
	}); err != nil {
		return nil, err
	}

	// 5. Review nodes and their authorship, review and stay edges
	if err := c.runStep(ctx, log, "ingest reviews", func(ctx context.Context) error {
		return c.driver.IngestReviews(ctx, data.Reviews)
	}); err != nil {
		return nil, err
	}

	// 6. Mean overall score per reviewed hotel
	if err := c.runStep(ctx, log, "aggregate review scores", c.driver.AggregateReviewScores); err != nil {
		return nil, err
	}

	// 7. Visa requirement edges between countries
	if err := c.runStep(ctx, log, "apply visa rules", func(ctx context.Context) error {
		return c.driver.ApplyVisaRules(ctx, data.VisaRules)
	}); err != nil {
		return nil, err
	}

	stats, err := c.driver.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}

	result := &LoadResult{
		RunID:     runID,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Stats:     stats,
	}

	log.Info("graph load complete",
		"elapsed", result.Duration.Round(time.Millisecond),
		"nodes", stats.TotalNodes(),
		"relationships", stats.TotalRelationships())

	return result, nil
}

// runStep executes one write step, logging its completion and wall
// time. Errors come back wrapped with the step name.
func (c *Client) runStep(ctx context.Context, log *slog.Logger, name string, fn func(context.Context) error) error {
	started := time.Now()

	if err := fn(ctx); err != nil {
		log.Error("step failed", "step", name, "error", err)
		return fmt.Errorf("%s: %w", name, err)
	}

	log.Info(name+" complete", "elapsed", time.Since(started).Round(time.Millisecond))
	return nil
}

// Stats returns current node and relationship counts.
func (c *Client) Stats(ctx context.Context) (*types.GraphStats, error) {
	return c.driver.GetStats(ctx)
}

// Close closes the client and its database connection.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

var (
	// ErrNoDataset is returned when Load is called without a dataset.
	ErrNoDataset = errors.New("no dataset provided")
)
