package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/karigor/search-service/internal/domain"
	"github.com/karigor/search-service/internal/engine"
)

// CreatorLookup resolves a creator profile by ID. Portfolio items inherit
// their creator's location, so the synchronizer needs this when projecting
// them. A nil profile with a nil error means the creator does not exist.
type CreatorLookup interface {
	GetCreator(ctx context.Context, id string) (*domain.CreatorProfile, error)
}

// Options tunes synchronizer retry behavior.
type Options struct {
	// MaxRetries bounds index write attempts per operation. Zero means
	// a single attempt with no retries.
	MaxRetries uint
	// RetryInterval is the initial backoff interval between attempts.
	RetryInterval time.Duration
}

// DefaultOptions returns the retry policy used in production.
func DefaultOptions() Options {
	return Options{
		MaxRetries:    4,
		RetryInterval: 200 * time.Millisecond,
	}
}

// Synchronizer applies source entity snapshots and tombstones to the search
// index. All writes are retried with exponential backoff so transient engine
// outages do not drop events on the floor.
type Synchronizer struct {
	engine   engine.Engine
	creators CreatorLookup
	opts     Options
	logger   *slog.Logger
}

// New creates a Synchronizer over the given engine.
func New(eng engine.Engine, creators CreatorLookup, opts Options, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		engine:   eng,
		creators: creators,
		opts:     opts,
		logger:   logger,
	}
}

// SyncListing projects a listing snapshot and upserts it.
func (s *Synchronizer) SyncListing(ctx context.Context, l *domain.Listing) error {
	if l == nil || l.ID == "" {
		return fmt.Errorf("sync listing: empty snapshot")
	}
	return s.upsert(ctx, ProjectListing(l))
}

// SyncPortfolioItem resolves the owning creator's location, projects the item
// and upserts it. A missing creator is not an error: the item is indexed
// without a location and stays out of geo and city filtering.
func (s *Synchronizer) SyncPortfolioItem(ctx context.Context, p *domain.PortfolioItem) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("sync portfolio item: empty snapshot")
	}

	var ownerLoc domain.Location
	if p.CreatorID != "" {
		creator, err := s.creators.GetCreator(ctx, p.CreatorID)
		if err != nil {
			return fmt.Errorf("sync portfolio item %s: resolve creator %s: %w", p.ID, p.CreatorID, err)
		}
		if creator != nil {
			ownerLoc = projectLocation(creator.Location)
		} else {
			s.logger.Warn("portfolio item references unknown creator",
				slog.String("item_id", p.ID),
				slog.String("creator_id", p.CreatorID),
			)
		}
	}

	return s.upsert(ctx, ProjectPortfolioItem(p, ownerLoc))
}

// SyncCreator projects a creator profile and upserts it.
func (s *Synchronizer) SyncCreator(ctx context.Context, c *domain.CreatorProfile) error {
	if c == nil || c.ID == "" {
		return fmt.Errorf("sync creator: empty snapshot")
	}
	return s.upsert(ctx, ProjectCreator(c))
}

// Delete removes the entry for the given entity reference. Deleting an entry
// that was never indexed is a no-op.
func (s *Synchronizer) Delete(ctx context.Context, itemType domain.ItemType, itemID string) error {
	if itemID == "" {
		return fmt.Errorf("delete %s: empty item id", itemType)
	}

	err := s.retry(ctx, func() error {
		return s.engine.Delete(ctx, itemType, itemID)
	})
	if err != nil {
		SyncFailures.WithLabelValues(string(itemType), "delete").Inc()
		return fmt.Errorf("delete %s: %w", domain.DocID(itemType, itemID), err)
	}

	EntriesTombstoned.WithLabelValues(string(itemType)).Inc()
	s.logger.Debug("index entry removed",
		slog.String("item_type", string(itemType)),
		slog.String("item_id", itemID),
	)
	return nil
}

// UpdateRating patches the rating aggregate on an existing entry. The rating
// feed is partial, so a missing entry is logged and skipped rather than
// synthesized from incomplete data.
func (s *Synchronizer) UpdateRating(ctx context.Context, itemType domain.ItemType, itemID string, rating domain.Rating) error {
	entry, err := s.engine.Get(ctx, itemType, itemID)
	if err != nil {
		return fmt.Errorf("update rating %s: %w", domain.DocID(itemType, itemID), err)
	}
	if entry == nil {
		s.logger.Warn("rating update for unindexed entry",
			slog.String("item_type", string(itemType)),
			slog.String("item_id", itemID),
		)
		return nil
	}

	entry.Rating = rating
	entry.LastUpdated = time.Now().UTC()
	return s.upsert(ctx, entry)
}

func (s *Synchronizer) upsert(ctx context.Context, entry *domain.IndexEntry) error {
	err := s.retry(ctx, func() error {
		return s.engine.Upsert(ctx, entry)
	})
	if err != nil {
		SyncFailures.WithLabelValues(string(entry.ItemType), "upsert").Inc()
		return fmt.Errorf("upsert %s: %w", entry.DocID(), err)
	}

	EntriesSynchronized.WithLabelValues(string(entry.ItemType)).Inc()
	s.logger.Debug("index entry synchronized",
		slog.String("item_type", string(entry.ItemType)),
		slog.String("item_id", entry.ItemID),
	)
	return nil
}

func (s *Synchronizer) retry(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.opts.RetryInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, op()
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(s.opts.MaxRetries+1),
	)
	return err
}
