package ports

import (
	"context"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

// BusinessRegistry reads the persistent business registry.
type BusinessRegistry interface {
	CountAll(ctx context.Context) (int, error)
	CountByLocation(ctx context.Context, filter domain.CountFilter) (int, error)
	// SearchByName returns the first match for a candidate name, or a
	// domain.ErrBusinessNotFound-kinded error when nothing matches.
	SearchByName(ctx context.Context, name string) (*domain.Business, error)
	List(ctx context.Context, filter domain.CountFilter, limit int) ([]domain.BusinessSummary, error)
}

// ReverseGeocoder resolves coordinates to a structured address record.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*domain.Address, error)
}

// TextGenerator calls the text-generation provider.
type TextGenerator interface {
	Chat(ctx context.Context, messages []domain.ChatMessage, options domain.GenerateOptions) (string, error)
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeocodeCache is the bounded read-through cache for geocoding results.
// Misses return (nil, false, nil); cache errors are never fatal to callers.
type GeocodeCache interface {
	Get(ctx context.Context, key string) (*domain.Address, bool, error)
	Set(ctx context.Context, key string, addr *domain.Address) error
}

// EventPublisher emits fire-and-forget interaction events for external
// analytics. Implementations must not block request handling on failure.
type EventPublisher interface {
	PublishInteraction(ctx context.Context, event domain.InteractionEvent) error
}
