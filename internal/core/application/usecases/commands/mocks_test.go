package commands_test

import (
	"context"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/distributor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetByAccountID(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllAvailable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockDistributorRepository struct{ mock.Mock }

func (m *MockDistributorRepository) Add(ctx context.Context, d *distributor.Distributor) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDistributorRepository) Get(ctx context.Context, id kernel.UUID) (*distributor.Distributor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*distributor.Distributor), args.Error(1)
}

type MockDistributorOrderRepository struct{ mock.Mock }

func (m *MockDistributorOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockDistributorOrderRepository) Get(ctx context.Context, distributorID, orderID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, distributorID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockDistributorOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockClientOrderRepository struct{ mock.Mock }

func (m *MockClientOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockClientOrderRepository) Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockClientOrderRepository) UpdateFulfillment(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockClientOrderRepository) Archive(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockCourierLocator struct{ mock.Mock }

func (m *MockCourierLocator) Positions(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]kernel.GeoPoint, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]kernel.GeoPoint), args.Error(1)
}

func (m *MockCourierLocator) UpdatePosition(ctx context.Context, id kernel.UUID, p kernel.GeoPoint) error {
	args := m.Called(ctx, id, p)
	return args.Error(0)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) Lock(ctx context.Context, actor ledger.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

func (m *MockLedgerRepository) Append(ctx context.Context, entries ...*ledger.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListByActor(ctx context.Context, actor ledger.Actor) ([]*ledger.Entry, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) ListActors(ctx context.Context) ([]ledger.Actor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Actor), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Get(ctx context.Context, actor ledger.Actor) (*ledger.Account, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, a *ledger.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type MockLedgerUoW struct{ mock.Mock }

func (m *MockLedgerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

func (m *MockLedgerUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

// memoryLedger is an in-memory LedgerUoWFactory. Writes become visible at
// Commit, entries are deduplicated by id like the Postgres store does.
type memoryLedger struct {
	mu       sync.Mutex
	entries  []*ledger.Entry
	accounts map[ledger.Actor]*ledger.Account
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{accounts: make(map[ledger.Actor]*ledger.Account)}
}

func (l *memoryLedger) Create() commands.LedgerUoW {
	return &memoryLedgerUoW{store: l}
}

func (l *memoryLedger) history(actor ledger.Actor) []*ledger.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*ledger.Entry
	for _, e := range l.entries {
		if e.Actor() == actor {
			out = append(out, e)
		}
	}
	return out
}

func (l *memoryLedger) account(actor ledger.Actor) *ledger.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[actor]
}

func (l *memoryLedger) corrupt(account *ledger.Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[account.Actor()] = account
}

type memoryLedgerUoW struct {
	store    *memoryLedger
	active   bool
	entries  []*ledger.Entry
	accounts map[ledger.Actor]*ledger.Account
}

func (u *memoryLedgerUoW) Begin(context.Context) error {
	u.active = true
	u.entries = nil
	u.accounts = make(map[ledger.Actor]*ledger.Account)
	return nil
}

func (u *memoryLedgerUoW) Commit(context.Context) error {
	if !u.active {
		return errs.NewValueIsInvalidError("transaction")
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.entries = append(u.store.entries, u.entries...)
	for actor, account := range u.accounts {
		u.store.accounts[actor] = account
	}
	u.active = false
	return nil
}

func (u *memoryLedgerUoW) Rollback(context.Context) error {
	if !u.active {
		return errs.NewValueIsInvalidError("transaction")
	}
	u.active = false
	return nil
}

func (u *memoryLedgerUoW) LedgerRepository() ports.LedgerRepository { return memoryEntries{u} }
func (u *memoryLedgerUoW) AccountRepository() ports.AccountRepository {
	return memoryAccounts{u}
}

type memoryEntries struct{ uow *memoryLedgerUoW }

func (r memoryEntries) Lock(context.Context, ledger.Actor) error { return nil }

func (r memoryEntries) Append(_ context.Context, entries ...*ledger.Entry) error {
	for _, e := range entries {
		if r.contains(e.ID()) {
			continue
		}
		r.uow.entries = append(r.uow.entries, e)
	}
	return nil
}

func (r memoryEntries) contains(id kernel.UUID) bool {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	for _, e := range r.uow.store.entries {
		if e.ID().IsEqual(id) {
			return true
		}
	}
	for _, e := range r.uow.entries {
		if e.ID().IsEqual(id) {
			return true
		}
	}
	return false
}

func (r memoryEntries) ListByActor(_ context.Context, actor ledger.Actor) ([]*ledger.Entry, error) {
	out := r.uow.store.history(actor)
	for _, e := range r.uow.entries {
		if e.Actor() == actor {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memoryEntries) ListActors(context.Context) ([]ledger.Actor, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	seen := make(map[ledger.Actor]struct{})
	var out []ledger.Actor
	for _, e := range r.uow.store.entries {
		if _, ok := seen[e.Actor()]; !ok {
			seen[e.Actor()] = struct{}{}
			out = append(out, e.Actor())
		}
	}
	return out, nil
}

type memoryAccounts struct{ uow *memoryLedgerUoW }

func (r memoryAccounts) Get(_ context.Context, actor ledger.Actor) (*ledger.Account, error) {
	if a, ok := r.uow.accounts[actor]; ok {
		return a, nil
	}
	if a := r.uow.store.account(actor); a != nil {
		return a, nil
	}
	return nil, errs.NewObjectNotFoundError("account", actor.String())
}

func (r memoryAccounts) Save(_ context.Context, a *ledger.Account) error {
	r.uow.accounts[a.Actor()] = a
	return nil
}
