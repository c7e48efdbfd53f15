// Package carrier integrates with the external system that transmits
// messages to phone numbers. The dispatch core only sees the Carrier
// interface; retry policy toward the carrier lives here, not in the core.
package carrier

import "context"

// Carrier delivers one message to one phone number and returns the
// carrier-side receipt id on success.
type Carrier interface {
	Send(ctx context.Context, phone, message string) (receiptID string, err error)
}
