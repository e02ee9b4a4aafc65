package services

import (
	"context"
	"errors"
	"log"

	"moneyflow/internal/advisor"
	"moneyflow/internal/models"
	"moneyflow/internal/store"
	"moneyflow/internal/validator"
	"moneyflow/internal/websocket"
)

var (
	ErrInsightNotFound    = errors.New("insight not found")
	ErrInvalidInsightType = errors.New("invalid insight type")
	ErrInvalidPriority    = errors.New("invalid priority")
)

type InsightHub interface {
	BroadcastInsight(userID int64, event websocket.InsightEvent)
}

type InsightService struct {
	store     *store.Store
	generator advisor.Generator
	hub       InsightHub
}

func NewInsightService(entityStore *store.Store, generator advisor.Generator, hub InsightHub) *InsightService {
	return &InsightService{store: entityStore, generator: generator, hub: hub}
}

func (s *InsightService) List(ctx context.Context, userID int64, limit int) ([]models.Insight, error) {
	var insights []models.Insight
	err := s.store.Read(func(tx *store.Tx) error {
		insights = tx.InsightsByUser(userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(insights) > limit {
		insights = insights[:limit]
	}
	return insights, nil
}

// MarkRead flips the one-way read flag. Re-marking a read insight is a
// no-op, not an error.
func (s *InsightService) MarkRead(ctx context.Context, insightID int64) (models.Insight, error) {
	var insight models.Insight
	err := s.store.Write(func(tx *store.Tx) error {
		updated, err := tx.MarkInsightRead(insightID)
		if err != nil {
			return ErrInsightNotFound
		}
		insight = updated
		return nil
	})
	return insight, err
}

func (s *InsightService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count := 0
	err := s.store.Read(func(tx *store.Tx) error {
		for _, insight := range tx.InsightsByUser(userID) {
			if !insight.IsRead {
				count++
			}
		}
		return nil
	})
	return count, err
}

type CreateInsightRequest struct {
	UserID      int64
	Type        string
	Title       string
	Description string
	Priority    string
}

func (s *InsightService) Create(ctx context.Context, req CreateInsightRequest) (models.Insight, error) {
	if !validator.ValidInsightType(req.Type) {
		return models.Insight{}, ErrInvalidInsightType
	}
	if !validator.ValidPriority(req.Priority) {
		return models.Insight{}, ErrInvalidPriority
	}
	var insight models.Insight
	err := s.store.Write(func(tx *store.Tx) error {
		insight = tx.CreateInsight(store.InsightInput{
			UserID:      req.UserID,
			Type:        req.Type,
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
		})
		return nil
	})
	if err != nil {
		return models.Insight{}, err
	}
	s.hub.BroadcastInsight(req.UserID, websocket.InsightEvent{
		InsightID: insight.ID,
		Title:     insight.Title,
		Priority:  insight.Priority,
	})
	return insight, nil
}

// Generate asks the advisor for suggestions based on recent transactions
// and stores them as insights. Advisor failures never propagate: the feed
// falls back to the static suggestions instead. The generator runs outside
// any store lock.
func (s *InsightService) Generate(ctx context.Context, userID int64) ([]models.Insight, error) {
	var recent []models.Transaction
	err := s.store.Read(func(tx *store.Tx) error {
		recent = tx.TransactionsByUser(userID, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	suggestions, err := s.generator.Generate(ctx, userID, recent)
	if err != nil {
		log.Printf("insight generation failed for user %d, using fallback: %v", userID, err)
		suggestions = advisor.FallbackSuggestions()
	}
	created := make([]models.Insight, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if !validator.ValidInsightType(suggestion.Type) || !validator.ValidPriority(suggestion.Priority) {
			continue
		}
		insight, err := s.Create(ctx, CreateInsightRequest{
			UserID:      userID,
			Type:        suggestion.Type,
			Title:       suggestion.Title,
			Description: suggestion.Description,
			Priority:    suggestion.Priority,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, insight)
	}
	return created, nil
}
