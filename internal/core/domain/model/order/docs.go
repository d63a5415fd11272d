// Package order implements the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding frozen prices, parties and status
//   - Status: the state machine Created -> {Paid, Cancelled}, Paid -> {Fulfilled, Refunded}
//   - Flow: whether the order came from a direct test request or a staked service request
//
// Key business rules:
//   - total price equals the sum of price components and additional prices, fixed at creation
//   - only the customer cancels, only the seller fulfills
//   - fulfillment needs a successful linked sample record
//   - refunds need a rejected sample record or an expired order
//   - Cancelled, Fulfilled and Refunded are terminal
package order
