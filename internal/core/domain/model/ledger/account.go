package ledger

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccountFromLog or RestoreAccount constructor")

	// ErrInsufficientFunds is returned when a debit exceeds the log-derived balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrForeignEntry is returned when an entry of another actor is folded into an account.
	ErrForeignEntry = errors.New("entry belongs to another actor")
)

// Account is the cached read model of an actor's wallet. It is only ever
// produced by folding the log, so it can be thrown away and rebuilt at any time.
type Account struct {
	actor        Actor
	totals       Totals
	reconciledAt time.Time
	guard        guard.ConstructorGuard
}

// NewAccountFromLog recomputes the account from the actor's complete history.
func NewAccountFromLog(actor Actor, entries []*Entry, at time.Time) (*Account, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if e.actor != actor {
			return nil, fmt.Errorf("%w: %s in account %s", ErrForeignEntry, e.actor, actor)
		}
	}

	return &Account{
		actor:        actor,
		totals:       Reconcile(entries),
		reconciledAt: at,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreAccount loads a cached account. The values are not trusted; compare
// them with the log through Matches before relying on them for writes.
func RestoreAccount(actor Actor, balance, revenue int64, entries int, reconciledAt time.Time) (*Account, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	return &Account{
		actor:        actor,
		totals:       Totals{Balance: balance, Revenue: revenue, Entries: entries},
		reconciledAt: reconciledAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

func (a *Account) Actor() Actor            { return a.actor }
func (a *Account) Balance() int64          { return a.totals.Balance }
func (a *Account) Revenue() int64          { return a.totals.Revenue }
func (a *Account) EntryCount() int         { return a.totals.Entries }
func (a *Account) ReconciledAt() time.Time { return a.reconciledAt }

// Matches reports whether the cached values equal the fold of entries.
func (a *Account) Matches(entries []*Entry) bool {
	return a.totals == Reconcile(entries)
}
