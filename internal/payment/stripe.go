// Package payment wraps the external payment processor.  The portal only
// needs one primitive from it: minting a client secret for a charge amount.
package payment

import (
	"context"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
)

// IntentClient mints charge intents.  Implemented by the Stripe client below
// and by fakes in tests.
type IntentClient interface {
	CreateIntent(ctx context.Context, amount int64) (clientSecret string, err error)
}

// StripeClient implements IntentClient against Stripe.  Amounts are passed
// through verbatim in USD cents; no fee schedule is validated here.
type StripeClient struct{}

// NewStripeClient configures the package-level Stripe key and returns a
// client.  The key is process-wide state set once at startup.
func NewStripeClient(secretKey string) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{}
}

// CreateIntent creates a payment intent for amount and returns its client
// secret, which the caller completes out of band.
func (s *StripeClient) CreateIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.Context = ctx
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
