package ledgerrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerRepository implements ports.LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Lock takes a transaction-scoped advisory lock on the actor's wallet. It must
// run inside a transaction; the lock is released on commit or rollback.
func (r *GormLedgerRepository) Lock(ctx context.Context, actor ledger.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", actor.String()).Error
}

// Append inserts the entries. An entry whose id is already stored is skipped,
// which makes replaying a fulfillment step harmless.
func (r *GormLedgerRepository) Append(ctx context.Context, entries ...*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, entryFromDomain(e))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&dtos).Error
}

// ListByActor returns the actor's complete history, oldest first.
func (r *GormLedgerRepository) ListByActor(ctx context.Context, actor ledger.Actor) ([]*ledger.Entry, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("actor_type = ? AND actor_id = ?", actor.Type.String(), actor.ID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := entryToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// ListActors returns every actor with at least one entry.
func (r *GormLedgerRepository) ListActors(ctx context.Context) ([]ledger.Actor, error) {
	var rows []struct {
		ActorType string
		ActorID   uuid.UUID
	}
	if err := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Distinct("actor_type", "actor_id").
		Order("actor_type, actor_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	actors := make([]ledger.Actor, 0, len(rows))
	for _, row := range rows {
		actor, err := actorToDomain(row.ActorType, row.ActorID)
		if err != nil {
			return nil, err
		}
		actors = append(actors, actor)
	}

	return actors, nil
}

// GormAccountRepository implements ports.AccountRepository using GORM.
type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Get retrieves the cached account of an actor.
func (r *GormAccountRepository) Get(ctx context.Context, actor ledger.Actor) (*ledger.Account, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	err := r.db.WithContext(ctx).
		First(&dto, "actor_type = ? AND actor_id = ?", actor.Type.String(), actor.ID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", actor.String())
		}
		return nil, err
	}

	return accountToDomain(dto)
}

// Save upserts the cached account.
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	dto := accountFromDomain(account)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "actor_type"}, {Name: "actor_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
