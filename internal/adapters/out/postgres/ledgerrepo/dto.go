// Package ledgerrepo persists the append-only entry log and the cached
// accounts derived from it.
package ledgerrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// EntryDTO is one immutable row of the log. Rows are never updated.
type EntryDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ActorType      string     `gorm:"type:varchar(16);not null;index:idx_ledger_entries_actor,priority:1"`
	ActorID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_ledger_entries_actor,priority:2"`
	Type           string     `gorm:"type:varchar(16);not null"`
	Amount         int64      `gorm:"not null"`
	Status         string     `gorm:"type:varchar(16);not null"`
	RelatedOrderID *uuid.UUID `gorm:"type:uuid;index"`
	Description    string     `gorm:"type:text"`
	CreatedAt      time.Time  `gorm:"not null"`
}

func (EntryDTO) TableName() string {
	return "ledger_entries"
}

// AccountDTO is the cached fold of one actor's entries.
type AccountDTO struct {
	ActorType    string    `gorm:"type:varchar(16);primaryKey"`
	ActorID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Balance      int64     `gorm:"not null"`
	Revenue      int64     `gorm:"not null"`
	Entries      int       `gorm:"not null"`
	ReconciledAt time.Time `gorm:"not null"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

func entryFromDomain(e *ledger.Entry) EntryDTO {
	var relatedOrderID *uuid.UUID
	if id := e.RelatedOrderID(); id != nil {
		raw := id.Bytes()
		relatedOrderID = &raw
	}

	return EntryDTO{
		ID:             e.ID().Bytes(),
		ActorType:      e.Actor().Type.String(),
		ActorID:        e.Actor().ID.Bytes(),
		Type:           e.Type().String(),
		Amount:         e.Amount(),
		Status:         e.Status().String(),
		RelatedOrderID: relatedOrderID,
		Description:    e.Description(),
		CreatedAt:      e.CreatedAt(),
	}
}

func entryToDomain(dto EntryDTO) (*ledger.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	actor, err := actorToDomain(dto.ActorType, dto.ActorID)
	if err != nil {
		return nil, err
	}
	entryType, err := ledger.ParseEntryType(dto.Type)
	if err != nil {
		return nil, err
	}
	status, err := ledger.ParseEntryStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var relatedOrderID *kernel.UUID
	if dto.RelatedOrderID != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.RelatedOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		relatedOrderID = &orderID
	}

	return ledger.RestoreEntry(id, actor, entryType, dto.Amount, status, relatedOrderID, dto.Description, dto.CreatedAt)
}

func accountFromDomain(a *ledger.Account) AccountDTO {
	return AccountDTO{
		ActorType:    a.Actor().Type.String(),
		ActorID:      a.Actor().ID.Bytes(),
		Balance:      a.Balance(),
		Revenue:      a.Revenue(),
		Entries:      a.EntryCount(),
		ReconciledAt: a.ReconciledAt(),
	}
}

func accountToDomain(dto AccountDTO) (*ledger.Account, error) {
	actor, err := actorToDomain(dto.ActorType, dto.ActorID)
	if err != nil {
		return nil, err
	}
	return ledger.RestoreAccount(actor, dto.Balance, dto.Revenue, dto.Entries, dto.ReconciledAt)
}

func actorToDomain(actorType string, actorID uuid.UUID) (ledger.Actor, error) {
	t, err := ledger.ParseActorType(actorType)
	if err != nil {
		return ledger.Actor{}, err
	}
	id, err := kernel.UUIDFromBytes(actorID[:])
	if err != nil {
		return ledger.Actor{}, err
	}
	return ledger.NewActor(t, id)
}
