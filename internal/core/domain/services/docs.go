// Package services provides domain services of the order service: business
// rules that need collaborators (here, a logger) and so do not sit on the
// Order aggregate itself.
//
// The package includes:
//   - StatusTransitionPolicy: decides whether an order may move from its stored status to a requested one
package services
