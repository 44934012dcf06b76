package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"
)

// BraintreeGateway adapts the Braintree SDK to the Gateway interface.
type BraintreeGateway struct {
	client *braintree.Braintree
}

// NewBraintree builds a gateway client from merchant credentials. env is
// "sandbox" or "production".
func NewBraintree(env, merchantID, publicKey, privateKey string) *BraintreeGateway {
	environment := braintree.Sandbox
	if env == "production" {
		environment = braintree.Production
	}
	return &BraintreeGateway{
		client: braintree.New(environment, merchantID, publicKey, privateKey),
	}
}

func (g *BraintreeGateway) ClientToken(ctx context.Context) (string, error) {
	return g.client.ClientToken().Generate(ctx)
}

func (g *BraintreeGateway) Sale(ctx context.Context, amount, nonce string) (*SaleResult, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	cents := parsed.Mul(decimal.NewFromInt(100)).IntPart()

	tx, err := g.client.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(cents, 2),
		PaymentMethodNonce: nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		// Processor declines come back as a 422 api-error-response
		// with the rejected transaction embedded. That is a completed
		// sale attempt, not a gateway failure.
		var bterr *braintree.BraintreeError
		if errors.As(err, &bterr) && bterr.Transaction != nil {
			return &SaleResult{
				Success:       false,
				TransactionID: bterr.Transaction.Id,
				Status:        string(bterr.Transaction.Status),
				Message:       bterr.Error(),
				Amount:        amount,
			}, nil
		}
		return nil, err
	}

	result := &SaleResult{
		TransactionID: tx.Id,
		Status:        string(tx.Status),
		Message:       tx.ProcessorResponseText,
		Amount:        amount,
	}

	switch tx.Status {
	case braintree.TransactionStatusAuthorized,
		braintree.TransactionStatusSubmittedForSettlement,
		braintree.TransactionStatusSettling,
		braintree.TransactionStatusSettled:
		result.Success = true
	}

	return result, nil
}
