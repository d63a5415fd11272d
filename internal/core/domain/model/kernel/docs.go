// Package kernel provides the shared value objects of the marketplace domain.
//
// The package includes:
//   - UUID: identifier of orders, services and service requests
//   - AccountID: identity of customers, providers and authorities
//   - Balance: unsigned amount in the smallest currency unit
//   - Currency and Price: the priced components of a service
//   - ProviderKind: lab, genetic analyst or health professional
//   - Location: the country/region/city triple service requests are keyed by
//   - TrackingID: the 21 character human-readable record identifier
//
// Zero values of the validated types are invalid; use the constructors.
package kernel
