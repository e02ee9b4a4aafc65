// Package advisor defines the insight-generation collaborator. The real
// generator is an external LLM-backed service; this package only fixes the
// interface and ships a static implementation so the feed keeps working
// when the generator is down or absent.
package advisor

import (
	"context"

	"moneyflow/internal/models"
)

type Suggestion struct {
	Type        string
	Title       string
	Description string
	Priority    string
}

type Generator interface {
	Generate(ctx context.Context, userID int64, recent []models.Transaction) ([]Suggestion, error)
}

// Static always returns the same generic suggestions. It doubles as the
// fallback payload when a real generator fails.
type Static struct{}

func (Static) Generate(ctx context.Context, userID int64, recent []models.Transaction) ([]Suggestion, error) {
	return FallbackSuggestions(), nil
}

func FallbackSuggestions() []Suggestion {
	return []Suggestion{
		{
			Type:        "savings",
			Title:       "Review your monthly subscriptions",
			Description: "Recurring charges often go unnoticed. Cancel the ones you no longer use.",
			Priority:    "medium",
		},
		{
			Type:        "spending",
			Title:       "Set a category budget",
			Description: "Pick your top spending category this month and set a limit for the next one.",
			Priority:    "low",
		},
	}
}
