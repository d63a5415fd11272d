// Package servicerequest models staked demand for services not yet offered.
//
// A customer escrows a stake against a location and category. A provider
// claims the request with one of its services, the customer orders that
// service, and once the order is fulfilled the provider finalizes the
// request and the stake goes back to the customer. The customer may
// withdraw at any point before finalization, subject to a cooldown.
package servicerequest
