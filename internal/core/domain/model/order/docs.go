// Package order provides the Order aggregate of the food-delivery order service
// and the lifecycle state machine it moves through.
//
// The package includes:
//   - Order: the aggregate root (parties, addresses, money breakdown, items, lifecycle)
//   - Item: an immutable order line with snapshotted name and price
//   - Status: the lifecycle state and its allow-list of transitions
//   - PaymentStatus: settlement state, recorded but not part of the state machine
//
// Key business rules:
//   - An order has at least one item and a non-empty delivery address
//   - total = subtotal + delivery fee - discount, all amounts non-negative
//   - Transitions are denied unless listed; terminal statuses have no successors
//   - Unknown stored statuses survive a round trip but cannot transition anywhere
package order
