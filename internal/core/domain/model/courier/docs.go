// Package courier holds the courier aggregate: identity, last known location,
// ratings, the derived Score and the delivery list.
//
// The delivery list is the courier projection of orders. Each Delivery is a
// plain-data snapshot keyed by order id with its own sub-status
// (pending, in_progress, completed, cancelled). At most one active entry exists
// per order; a cancelled entry is kept and revived on reassignment.
package courier
