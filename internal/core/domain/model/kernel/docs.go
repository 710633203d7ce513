// Package kernel provides the primitives shared by every fulfillment aggregate.
//
// The package includes:
//   - UUID: identifier value object, including name-based identifiers used to make
//     ledger writes idempotent
//   - GeoPoint: a WGS84 coordinate with great-circle distance (Haversine)
//
// Both are immutable and their zero values fail validation.
package kernel
