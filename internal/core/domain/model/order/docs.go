// Package order holds the order aggregate and its state machine.
//
// The package includes:
//   - Order: the aggregate, persisted once per projection (client, distributor)
//   - Status: new -> confirmed -> in_delivery -> delivered, or cancelled
//   - FulfillmentMode: pickup or delivery, fixed at creation
//   - ValidationCode: the one-time code that gates completion
//   - LineItem: plain-data product lines
//
// Transitions requested on a delivered or cancelled order are no-ops, never
// errors. Rejected transitions return a *TransitionError.
package order
