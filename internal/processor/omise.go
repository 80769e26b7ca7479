package processor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// OmiseProcessor adapts the Omise gateway to the Processor interface.
// Amounts are converted to currency subunits at the boundary.
type OmiseProcessor struct {
	client *omise.Client
}

func NewOmiseProcessor(publicKey, secretKey string, timeout time.Duration) (*OmiseProcessor, error) {
	c, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("omise client: %w", err)
	}
	c.SetDebug(false)
	// A hung gateway call must surface as a failed settlement, not block the
	// request forever.
	c.Timeout = timeout
	return &OmiseProcessor{client: c}, nil
}

func (p *OmiseProcessor) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]interface{}) (*Intent, error) {
	charge := &omise.Charge{}
	req := &operations.CreateCharge{
		Amount:   int64(math.Round(amount * 100)),
		Currency: currency,
		Metadata: metadata,
	}
	if err := p.client.Do(charge, req); err != nil {
		return nil, fmt.Errorf("omise create charge: %w", err)
	}

	return &Intent{
		Reference: charge.ID,
		Amount:    amount,
		Currency:  currency,
	}, nil
}

func (p *OmiseProcessor) RetrieveStatus(ctx context.Context, reference string) (Status, error) {
	charge := &omise.Charge{}
	if err := p.client.Do(charge, &operations.RetrieveCharge{ChargeID: reference}); err != nil {
		return StatusFailed, fmt.Errorf("omise retrieve charge: %w", err)
	}

	switch charge.Status {
	case omise.ChargeSuccessful:
		return StatusSucceeded, nil
	case omise.ChargeFailed:
		return StatusFailed, nil
	default:
		return StatusPending, nil
	}
}
