// Package services holds domain services that span more than one aggregate.
//
// The package includes:
//   - OrderDispatcher: applies an assignment to both the courier and the order
//   - RankingEngine: courier scoring and distance-aware ranking
package services
