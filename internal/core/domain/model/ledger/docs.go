// Package ledger models the append-only wallet log of clients, distributors and
// couriers.
//
// An actor's balance is always Reconcile over its own entries. Account is a
// cache of that fold for reads; it is never incremented in place and can be
// rebuilt from the log at any time. Entries written by fulfillment steps get an
// id derived from (order, actor, type) so a replayed step cannot double-credit.
package ledger
