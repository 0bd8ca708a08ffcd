package ports

import (
	"context"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

// ChatService answers one free-text registry question.
type ChatService interface {
	Chat(ctx context.Context, message string) domain.ChatResult
	SampleQuestions() []string
}

// DescribeService builds the location narrative and description for a
// business at a coordinate pair.
type DescribeService interface {
	Describe(ctx context.Context, name, category string, lat, lon float64) (*domain.Description, error)
}
