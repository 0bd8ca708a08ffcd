package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/datakota/usaha-assistant/internal/core/domain"
	"github.com/datakota/usaha-assistant/internal/core/narrative"
	"github.com/datakota/usaha-assistant/internal/core/ports"
)

// Cache keys round coordinates to 5 decimal places (~1m), which is below the
// resolution of the zoom level requested from the geocoder.
func geocodeCacheKey(lat, lon float64) string {
	return fmt.Sprintf("geo:%.5f:%.5f", lat, lon)
}

// DescribeUseCase builds the location narrative and the generated (or
// fallback) description for a business at given coordinates.
type DescribeUseCase struct {
	geocoder  ports.ReverseGeocoder
	cache     ports.GeocodeCache
	generator ports.TextGenerator
	logger    *slog.Logger

	geocodeTimeout  time.Duration
	generateTimeout time.Duration
}

func NewDescribeUseCase(
	geocoder ports.ReverseGeocoder,
	cache ports.GeocodeCache,
	generator ports.TextGenerator,
	logger *slog.Logger,
	geocodeTimeout, generateTimeout time.Duration,
) *DescribeUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	if geocodeTimeout <= 0 {
		geocodeTimeout = 10 * time.Second
	}
	if generateTimeout <= 0 {
		generateTimeout = 10 * time.Second
	}
	return &DescribeUseCase{
		geocoder:        geocoder,
		cache:           cache,
		generator:       generator,
		logger:          logger,
		geocodeTimeout:  geocodeTimeout,
		generateTimeout: generateTimeout,
	}
}

// Describe always yields a non-empty description: geocoding failures degrade
// the narrative to the coordinate form, generation failures degrade the text
// to a deterministic template.
func (uc *DescribeUseCase) Describe(ctx context.Context, name, category string, lat, lon float64) (*domain.Description, error) {
	addr, geocodeFailed := uc.resolveAddress(ctx, lat, lon)

	loc := narrative.Build(addr, lat, lon)
	detail := domain.GeocodeDetail{Summary: narrative.Summary(addr)}
	if addr != nil {
		detail.Road = addr.Road
		detail.Full = addr.DisplayName
	}

	text, degraded := uc.generateDescription(ctx, name, category, loc)

	return &domain.Description{
		Narrative:   loc,
		Text:        text,
		Geocode:     detail,
		GeocodeFail: geocodeFailed,
		Degraded:    degraded,
	}, nil
}

// resolveAddress reads through the cache when one is configured. Cache
// errors are logged and treated as misses; they never fail the request.
func (uc *DescribeUseCase) resolveAddress(ctx context.Context, lat, lon float64) (*domain.Address, bool) {
	key := geocodeCacheKey(lat, lon)

	if uc.cache != nil {
		addr, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.logger.Warn("geocode cache read failed", "key", key, "error", err)
		} else if ok {
			return addr, false
		}
	}

	geocodeCtx, cancel := context.WithTimeout(ctx, uc.geocodeTimeout)
	defer cancel()

	addr, err := uc.geocoder.Reverse(geocodeCtx, lat, lon)
	if err != nil {
		uc.logger.Warn("reverse geocoding failed, continuing with coordinates",
			"lat", lat, "lon", lon, "error", err)
		return nil, true
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, addr); err != nil {
			uc.logger.Warn("geocode cache write failed", "key", key, "error", err)
		}
	}
	return addr, false
}

func (uc *DescribeUseCase) generateDescription(ctx context.Context, name, category, loc string) (string, bool) {
	generateCtx, cancel := context.WithTimeout(ctx, uc.generateTimeout)
	defer cancel()

	text, err := uc.generator.Chat(generateCtx, describeMessages(name, category, loc), defaultGenerateOptions)
	if err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), false
	}
	if err != nil {
		uc.logger.Warn("description generation failed, using fallback",
			"name", name, "error", err)
	}
	return fallbackDescription(name, category, loc), true
}

// fallbackDescription is the deterministic template used when the provider
// cannot be reached. The coordinate-form narrative selects the shorter
// phrasing.
func fallbackDescription(name, category, loc string) string {
	if narrative.IsCoordinateFallback(loc) {
		return fmt.Sprintf("%s adalah %s di %s.", name, strings.ToLower(category), loc)
	}
	return fmt.Sprintf("%s adalah %s yang berlokasi di %s.", name, strings.ToLower(category), loc)
}
