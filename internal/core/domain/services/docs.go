// Package services provides domain services that span aggregates or need
// collaborators the aggregates must not know about.
//
// The package includes:
//   - TrackingIDIssuer: derives collision-free tracking ids for new orders
//   - PendingObligations: answers whether a provider still owes work
package services
