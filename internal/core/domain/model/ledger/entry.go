package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry, NewOrderEntry or RestoreEntry constructor")

// EntryType decides the sign of an entry.
type EntryType int

const (
	UnknownEntryType EntryType = iota
	// Vente is a sale credited to a distributor.
	Vente
	Credit
	// Remboursement is a refund credited to a client.
	Remboursement
	// Retrait is a withdrawal.
	Retrait
	Debit
	Commission
)

func getEntryTypeStrings() map[EntryType]string {
	//nolint:exhaustive // UnknownEntryType is intentionally excluded as it's invalid
	return map[EntryType]string{
		Vente:         "vente",
		Credit:        "credit",
		Remboursement: "remboursement",
		Retrait:       "retrait",
		Debit:         "debit",
		Commission:    "commission",
	}
}

func (t EntryType) String() string {
	if s, ok := getEntryTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

func (t EntryType) Validate() error {
	if _, ok := getEntryTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("entry type", fmt.Errorf("%d is not a valid entry type", t))
	}
	return nil
}

// IsCredit reports whether the type adds to a balance.
func (t EntryType) IsCredit() bool {
	return t == Vente || t == Credit || t == Remboursement
}

func ParseEntryType(s string) (EntryType, error) {
	for t, str := range getEntryTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return UnknownEntryType, errs.NewValueIsInvalidErrorWithCause("entry type", fmt.Errorf("%q is not a valid entry type", s))
}

// EntryStatus marks entries that must be ignored by the fold.
type EntryStatus int

const (
	UnknownEntryStatus EntryStatus = iota
	EntryCompleted
	EntryFailed
)

func (s EntryStatus) String() string {
	switch s {
	case EntryCompleted:
		return "completed"
	case EntryFailed:
		return "failed"
	case UnknownEntryStatus:
	}
	return "unknown"
}

func ParseEntryStatus(s string) (EntryStatus, error) {
	switch s {
	case "completed":
		return EntryCompleted, nil
	case "failed":
		return EntryFailed, nil
	}
	return UnknownEntryStatus, errs.NewValueIsInvalidErrorWithCause("entry status", fmt.Errorf("%q is not a valid entry status", s))
}

// Entry is an immutable ledger record. Amount is always non-negative; the type
// carries the sign.
type Entry struct {
	id             kernel.UUID
	actor          Actor
	entryType      EntryType
	amount         int64
	status         EntryStatus
	relatedOrderID *kernel.UUID
	description    string
	createdAt      time.Time
	guard          guard.ConstructorGuard
}

// NewEntry creates a completed entry.
func NewEntry(
	id kernel.UUID,
	actor Actor,
	entryType EntryType,
	amount int64,
	relatedOrderID *kernel.UUID,
	description string,
	createdAt time.Time,
) (*Entry, error) {
	return RestoreEntry(id, actor, entryType, amount, EntryCompleted, relatedOrderID, description, createdAt)
}

// NewOrderEntry creates an entry whose id is derived from (order, actor, type).
// Replaying the same fulfillment step yields the same id, so the store can drop
// the duplicate instead of crediting twice.
func NewOrderEntry(
	actor Actor,
	entryType EntryType,
	amount int64,
	orderID kernel.UUID,
	description string,
	createdAt time.Time,
) (*Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	id := kernel.NewNameUUID(orderID.String(), actor.String(), entryType.String())
	return NewEntry(id, actor, entryType, amount, &orderID, description, createdAt)
}

// RestoreEntry rebuilds an entry from storage.
func RestoreEntry(
	id kernel.UUID,
	actor Actor,
	entryType EntryType,
	amount int64,
	status EntryStatus,
	relatedOrderID *kernel.UUID,
	description string,
	createdAt time.Time,
) (*Entry, error) {
	var amountErr, statusErr error
	if amount < 0 {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", amount))
	}
	if status != EntryCompleted && status != EntryFailed {
		statusErr = errs.NewValueIsInvalidErrorWithCause("entry status", fmt.Errorf("%d is not a valid entry status", status))
	}
	if err := errors.Join(id.Validate(), actor.Validate(), entryType.Validate(), amountErr, statusErr); err != nil {
		return nil, err
	}

	e := &Entry{
		id:          id,
		actor:       actor,
		entryType:   entryType,
		amount:      amount,
		status:      status,
		description: strings.TrimSpace(description),
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}
	if relatedOrderID != nil {
		orderID := *relatedOrderID
		e.relatedOrderID = &orderID
	}
	return e, nil
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID      { return e.id }
func (e *Entry) Actor() Actor         { return e.actor }
func (e *Entry) Type() EntryType      { return e.entryType }
func (e *Entry) Amount() int64        { return e.amount }
func (e *Entry) Status() EntryStatus  { return e.status }
func (e *Entry) Description() string  { return e.description }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

func (e *Entry) RelatedOrderID() *kernel.UUID {
	if e.relatedOrderID == nil {
		return nil
	}
	id := *e.relatedOrderID
	return &id
}

// Signed returns the amount with the sign of its type.
func (e *Entry) Signed() int64 {
	if e.entryType.IsCredit() {
		return e.amount
	}
	return -e.amount
}
