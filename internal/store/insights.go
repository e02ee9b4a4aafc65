package store

import (
	"sort"
	"time"

	"moneyflow/internal/models"
)

type InsightInput struct {
	UserID      int64
	Type        string
	Title       string
	Description string
	Priority    string
}

func (tx *Tx) CreateInsight(input InsightInput) models.Insight {
	insight := models.Insight{
		ID:          tx.allocID(collectionInsights),
		UserID:      input.UserID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Date:        time.Now().UTC(),
		IsRead:      false,
	}
	tx.s.insights[insight.ID] = insight
	return insight
}

func (tx *Tx) GetInsight(id int64) (models.Insight, error) {
	insight, ok := tx.s.insights[id]
	if !ok {
		return models.Insight{}, ErrNotFound
	}
	return insight, nil
}

func (tx *Tx) InsightsByUser(userID int64) []models.Insight {
	insights := make([]models.Insight, 0)
	for _, insight := range tx.s.insights {
		if insight.UserID == userID {
			insights = append(insights, insight)
		}
	}
	sort.Slice(insights, func(i, j int) bool {
		if insights[i].Date.Equal(insights[j].Date) {
			return insights[i].ID > insights[j].ID
		}
		return insights[i].Date.After(insights[j].Date)
	})
	return insights
}

// MarkInsightRead is a one-way transition; marking an already-read insight
// is a no-op returning the unchanged record.
func (tx *Tx) MarkInsightRead(id int64) (models.Insight, error) {
	insight, ok := tx.s.insights[id]
	if !ok {
		return models.Insight{}, ErrNotFound
	}
	if !insight.IsRead {
		insight.IsRead = true
		tx.s.insights[id] = insight
	}
	return insight, nil
}
