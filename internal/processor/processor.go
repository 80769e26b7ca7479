// Package processor isolates the external payment gateway behind two
// capabilities: create an intent and retrieve its terminal status. The rest
// of the system treats the gateway as opaque.
package processor

import "context"

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

type Intent struct {
	Reference string
	Amount    float64
	Currency  string
}

type Processor interface {
	// CreateIntent registers a charge with the gateway and returns an opaque
	// reference the client completes out-of-band.
	CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]interface{}) (*Intent, error)
	// RetrieveStatus resolves a reference to its current status. A gateway
	// error or timeout is reported as an error, which callers treat as a
	// failed settlement.
	RetrieveStatus(ctx context.Context, reference string) (Status, error)
}
