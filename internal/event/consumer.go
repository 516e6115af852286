// Package event consumes the entity lifecycle topics and drives the index
// synchronizer. Create and update events carry full snapshots; delete events
// carry only the entity ID; rating events carry the new aggregate.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/karigor/search-service/internal/domain"
	"github.com/karigor/search-service/internal/indexer"
	pkgkafka "github.com/karigor/search-service/pkg/kafka"
)

// Topic constants for the entity lifecycle events the search service consumes.
const (
	TopicListingCreated       = "karigor.listing.created"
	TopicListingUpdated       = "karigor.listing.updated"
	TopicListingDeleted       = "karigor.listing.deleted"
	TopicListingRatingUpdated = "karigor.listing.rating_updated"

	TopicPortfolioCreated       = "karigor.portfolio.created"
	TopicPortfolioUpdated       = "karigor.portfolio.updated"
	TopicPortfolioDeleted       = "karigor.portfolio.deleted"
	TopicPortfolioRatingUpdated = "karigor.portfolio.rating_updated"

	TopicCreatorCreated       = "karigor.creator.created"
	TopicCreatorUpdated       = "karigor.creator.updated"
	TopicCreatorDeleted       = "karigor.creator.deleted"
	TopicCreatorRatingUpdated = "karigor.creator.rating_updated"
)

// Topics returns every topic the search service subscribes to.
func Topics() []string {
	return []string{
		TopicListingCreated, TopicListingUpdated, TopicListingDeleted, TopicListingRatingUpdated,
		TopicPortfolioCreated, TopicPortfolioUpdated, TopicPortfolioDeleted, TopicPortfolioRatingUpdated,
		TopicCreatorCreated, TopicCreatorUpdated, TopicCreatorDeleted, TopicCreatorRatingUpdated,
	}
}

// deletedData is the payload of *.deleted events.
type deletedData struct {
	ID string `json:"id"`
}

// ratingData is the payload of *.rating_updated events.
type ratingData struct {
	ID     string        `json:"id"`
	Rating domain.Rating `json:"rating"`
}

// Consumer routes lifecycle events to the synchronizer.
type Consumer struct {
	indexer *indexer.Synchronizer
	logger  *slog.Logger
}

// NewConsumer creates an event consumer over the given synchronizer.
func NewConsumer(idx *indexer.Synchronizer, logger *slog.Logger) *Consumer {
	return &Consumer{
		indexer: idx,
		logger:  logger,
	}
}

// Handle processes one event based on its type. Unknown event types are
// logged and committed so a topic-subscription mismatch cannot wedge the
// consumer group.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicListingCreated, TopicListingUpdated:
		return c.handleListingUpsert(ctx, event)
	case TopicListingDeleted:
		return c.handleDelete(ctx, event, domain.ItemTypeListing)
	case TopicListingRatingUpdated:
		return c.handleRating(ctx, event, domain.ItemTypeListing)

	case TopicPortfolioCreated, TopicPortfolioUpdated:
		return c.handlePortfolioUpsert(ctx, event)
	case TopicPortfolioDeleted:
		return c.handleDelete(ctx, event, domain.ItemTypePortfolio)
	case TopicPortfolioRatingUpdated:
		return c.handleRating(ctx, event, domain.ItemTypePortfolio)

	case TopicCreatorCreated, TopicCreatorUpdated:
		return c.handleCreatorUpsert(ctx, event)
	case TopicCreatorDeleted:
		return c.handleDelete(ctx, event, domain.ItemTypeCreator)
	case TopicCreatorRatingUpdated:
		return c.handleRating(ctx, event, domain.ItemTypeCreator)

	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

func (c *Consumer) handleListingUpsert(ctx context.Context, event *pkgkafka.Event) error {
	var listing domain.Listing
	if err := event.UnmarshalData(&listing); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}

	if err := c.indexer.SyncListing(ctx, &listing); err != nil {
		return fmt.Errorf("sync listing from %s: %w", event.EventType, err)
	}

	c.logger.InfoContext(ctx, "indexed listing from event",
		slog.String("listing_id", listing.ID),
		slog.String("event_type", event.EventType),
	)
	return nil
}

func (c *Consumer) handlePortfolioUpsert(ctx context.Context, event *pkgkafka.Event) error {
	var item domain.PortfolioItem
	if err := event.UnmarshalData(&item); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}

	if err := c.indexer.SyncPortfolioItem(ctx, &item); err != nil {
		return fmt.Errorf("sync portfolio item from %s: %w", event.EventType, err)
	}

	c.logger.InfoContext(ctx, "indexed portfolio item from event",
		slog.String("item_id", item.ID),
		slog.String("event_type", event.EventType),
	)
	return nil
}

func (c *Consumer) handleCreatorUpsert(ctx context.Context, event *pkgkafka.Event) error {
	var creator domain.CreatorProfile
	if err := event.UnmarshalData(&creator); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}

	if err := c.indexer.SyncCreator(ctx, &creator); err != nil {
		return fmt.Errorf("sync creator from %s: %w", event.EventType, err)
	}

	c.logger.InfoContext(ctx, "indexed creator from event",
		slog.String("creator_id", creator.ID),
		slog.String("event_type", event.EventType),
	)
	return nil
}

func (c *Consumer) handleDelete(ctx context.Context, event *pkgkafka.Event, itemType domain.ItemType) error {
	var data deletedData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}
	if data.ID == "" {
		// Fall back to the envelope's aggregate reference.
		data.ID = event.AggregateID
	}

	if err := c.indexer.Delete(ctx, itemType, data.ID); err != nil {
		return fmt.Errorf("delete %s from %s: %w", itemType, event.EventType, err)
	}

	c.logger.InfoContext(ctx, "removed entry from event",
		slog.String("item_type", string(itemType)),
		slog.String("item_id", data.ID),
	)
	return nil
}

func (c *Consumer) handleRating(ctx context.Context, event *pkgkafka.Event, itemType domain.ItemType) error {
	var data ratingData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}
	if data.ID == "" {
		data.ID = event.AggregateID
	}

	if err := c.indexer.UpdateRating(ctx, itemType, data.ID, data.Rating); err != nil {
		return fmt.Errorf("update %s rating from %s: %w", itemType, event.EventType, err)
	}
	return nil
}
