package payment

import "context"

// SaleResult carries the gateway's answer to a sale transaction. Success is
// false for declines; declines are still a gateway answer, not an error.
type SaleResult struct {
	Success       bool
	TransactionID string
	Status        string
	Message       string
	Amount        string
}

// Gateway is the narrow surface of the external payment provider the checkout
// flow depends on. Sale returns an error only for transport or gateway-level
// failures; a declined transaction comes back as a SaleResult.
type Gateway interface {
	ClientToken(ctx context.Context) (string, error)
	Sale(ctx context.Context, amount, nonce string) (*SaleResult, error)
}
