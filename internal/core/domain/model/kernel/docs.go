// Package kernel holds the value objects shared by every aggregate of the order service.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Money: non-negative monetary amount backed by github.com/shopspring/decimal
//   - Coordinates: a validated latitude/longitude pair used for pickup and drop-off points
//
// All values are immutable. Zero values are invalid and fail Validate, so
// aggregates can detect fields that were never set through a constructor.
package kernel
