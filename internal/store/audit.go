package store

import (
	"sort"
	"time"

	"moneyflow/internal/models"
)

// AppendAudit records who did what to which entity. Entries are
// append-only.
func (tx *Tx) AppendAudit(actorID int64, action, entityType string, entityID int64, data string) models.AuditEntry {
	entry := models.AuditEntry{
		ID:         tx.allocID(collectionAudit),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Data:       data,
		CreatedAt:  time.Now().UTC(),
	}
	tx.s.audit[entry.ID] = entry
	return entry
}

func (tx *Tx) AuditByActor(actorID int64, limit int) []models.AuditEntry {
	entries := make([]models.AuditEntry, 0)
	for _, entry := range tx.s.audit {
		if entry.ActorID == actorID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
