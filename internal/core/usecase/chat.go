package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/datakota/usaha-assistant/internal/core/domain"
	"github.com/datakota/usaha-assistant/internal/core/intent"
	"github.com/datakota/usaha-assistant/internal/core/ports"
)

const (
	emptyMessageResponse      = "Pesan tidak boleh kosong."
	internalErrorResponse     = "Terjadi kesalahan internal. Silakan coba lagi."
	extractionFailureResponse = "Nama usaha tidak ditemukan. Contoh: 'apa itu Sembako Mukhlas?'"
	outOfScopeResponse        = "Maaf, saya hanya dapat menjawab pertanyaan tentang:\n" +
		"• Jumlah usaha (contoh: 'berapa usaha di Balikpapan?')\n" +
		"• Informasi usaha (contoh: 'apa itu Sembako Mukhlas?')"
)

var sampleQuestions = []string{
	"Berapa total usaha di database?",
	"Berapa usaha di Balikpapan?",
	"Ada berapa usaha aktif di Balikpapan Timur?",
	"Berapa jumlah usaha nonaktif di Balikpapan Selatan?",
	"Apa itu Sembako Mukhlas?",
	"Jelaskan Warung HELL MIE",
	"Info tentang PT MAHAMERU ENERGI SEMESTA",
}

// ChatUseCase is the response composer: it dispatches a classified message
// to the count or lookup path and always yields a non-empty answer, degrading
// to deterministic templates when the generation provider is unavailable.
type ChatUseCase struct {
	registry  ports.BusinessRegistry
	generator ports.TextGenerator
	events    ports.EventPublisher
	logger    *slog.Logger
}

func NewChatUseCase(
	registry ports.BusinessRegistry,
	generator ports.TextGenerator,
	events ports.EventPublisher,
	logger *slog.Logger,
) *ChatUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatUseCase{
		registry:  registry,
		generator: generator,
		events:    events,
		logger:    logger,
	}
}

// Chat never returns an error: provider failures are absorbed into the
// result and only logged.
func (uc *ChatUseCase) Chat(ctx context.Context, message string) domain.ChatResult {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ChatResult{
			Success:     false,
			Response:    emptyMessageResponse,
			MessageType: domain.MessageTypeError,
		}
	}

	tag := intent.Classify(message)

	var result domain.ChatResult
	degraded := false
	switch tag {
	case domain.IntentCount:
		result = uc.handleCount(ctx, message)
	case domain.IntentBusinessInfo:
		result, degraded = uc.handleBusinessInfo(ctx, message)
	default:
		result = domain.ChatResult{
			Success:     true,
			Response:    outOfScopeResponse,
			MessageType: domain.MessageTypeOutOfScope,
		}
	}

	uc.publishInteraction(ctx, tag, result, degraded)
	return result
}

func (uc *ChatUseCase) SampleQuestions() []string {
	out := make([]string, len(sampleQuestions))
	copy(out, sampleQuestions)
	return out
}

func (uc *ChatUseCase) handleCount(ctx context.Context, message string) domain.ChatResult {
	filter := intent.ExtractCountFilter(message)

	var (
		count int
		err   error
	)
	if filter.IsZero() {
		count, err = uc.registry.CountAll(ctx)
	} else {
		count, err = uc.registry.CountByLocation(ctx, filter)
	}
	if err != nil {
		uc.logger.Error("count query failed",
			"district", filter.District,
			"regency", filter.Regency,
			"status", filter.Status,
			"error", err,
		)
		return internalErrorResult()
	}

	return domain.ChatResult{
		Success:     true,
		Response:    formatCountResponse(count, filter),
		MessageType: domain.MessageTypeCount,
		Count:       &count,
	}
}

// formatCountResponse is template-composed, never provider-generated, so
// identical inputs yield byte-identical output.
func formatCountResponse(count int, filter domain.CountFilter) string {
	location := "di database"
	if filter.District != "" {
		location = "di Kecamatan " + filter.District
	} else if filter.Regency != "" {
		location = "di " + filter.Regency
	}

	status := ""
	if filter.Status != "" {
		status = " dengan status " + filter.Status
	}

	return fmt.Sprintf("Terdapat %d usaha%s %s.", count, status, location)
}

func (uc *ChatUseCase) handleBusinessInfo(ctx context.Context, message string) (domain.ChatResult, bool) {
	name, ok := intent.ExtractBusinessName(message)
	if !ok {
		return domain.ChatResult{
			Success:     false,
			Response:    extractionFailureResponse,
			MessageType: domain.MessageTypeError,
		}, false
	}

	business, err := uc.registry.SearchByName(ctx, name)
	if err != nil {
		if domain.IsKind(err, domain.ErrBusinessNotFound) {
			return domain.ChatResult{
				Success:     true,
				Response:    fmt.Sprintf("Saya tidak menemukan usaha dengan nama '%s' di database.", name),
				MessageType: domain.MessageTypeNotFound,
			}, false
		}
		uc.logger.Error("business search failed", "name", name, "error", err)
		return internalErrorResult(), false
	}

	description, degraded := uc.describeBusiness(ctx, business)
	return domain.ChatResult{
		Success:      true,
		Response:     description,
		MessageType:  domain.MessageTypeBusinessInfo,
		BusinessData: business,
	}, degraded
}

// describeBusiness asks the generator for the record description, falling
// back to the fixed template when the provider fails.
func (uc *ChatUseCase) describeBusiness(ctx context.Context, b *domain.Business) (string, bool) {
	text, err := uc.generator.Generate(ctx, businessInfoPrompt(b))
	if err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), false
	}
	if err != nil {
		uc.logger.Warn("description generation failed, using fallback", "name", b.Name, "error", err)
	}
	return fmt.Sprintf(
		"%s adalah usaha %s yang berlokasi di %s. Status usaha ini adalah %s.",
		b.Name, strings.ToLower(b.Category), b.Address, b.Status,
	), true
}

// publishInteraction hands the event off to a goroutine: the reply must
// never wait on the event stream, even through publish retries. The publish
// context is detached from the request so an already-answered request does
// not cancel it.
func (uc *ChatUseCase) publishInteraction(ctx context.Context, tag domain.ChatIntent, result domain.ChatResult, degraded bool) {
	if uc.events == nil {
		return
	}
	event := domain.InteractionEvent{
		Intent:      string(tag),
		MessageType: result.MessageType,
		Success:     result.Success,
		Degraded:    degraded,
	}
	go func() {
		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := uc.events.PublishInteraction(publishCtx, event); err != nil {
			uc.logger.Warn("interaction event publish failed", "error", err)
		}
	}()
}

func internalErrorResult() domain.ChatResult {
	return domain.ChatResult{
		Success:     false,
		Response:    internalErrorResponse,
		MessageType: domain.MessageTypeError,
	}
}
