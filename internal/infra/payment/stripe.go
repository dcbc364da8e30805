package payment

import (
	"context"
	"strings"

	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const productName = "Facility booking"

// StripeGateway implements the payment port against the Stripe API. Checkout
// sessions back the approval flow; payment intents back the embedded form.
type StripeGateway struct {
	api *client.API
	cfg config.StripeConfig
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeGateway{api: api, cfg: cfg}
}

func (g *StripeGateway) CreateCheckoutSession(
	ctx context.Context,
	amountCents int64,
	bookingID uuid.UUID,
	metadata map[string]string,
) (*commands.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.cfg.SuccessURL),
		CancelURL:  stripe.String(g.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.cfg.Currency),
					UnitAmount: stripe.Int64(amountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(productName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", bookingID.String())
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, infra.WrapRepoErr("stripe checkout session create failed", err, infra.KindUpstream)
	}
	return &commands.CheckoutSession{
		SessionID:   sess.ID,
		RedirectURL: sess.URL,
	}, nil
}

func (g *StripeGateway) CreateEmbeddedIntent(
	ctx context.Context,
	amountCents int64,
	bookingID uuid.UUID,
	metadata map[string]string,
) (*commands.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(g.cfg.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", bookingID.String())
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, infra.WrapRepoErr("stripe payment intent create failed", err, infra.KindUpstream)
	}
	return &commands.PaymentIntent{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// VerifySession accepts either reference kind the gateway hands out: checkout
// session ids ("cs_") or payment intent ids ("pi_"). The returned reference is
// canonicalized to the payment intent when one exists.
func (g *StripeGateway) VerifySession(ctx context.Context, reference string) (*commands.PaymentResult, error) {
	if strings.HasPrefix(reference, "pi_") {
		return g.verifyIntent(ctx, reference)
	}
	return g.verifyCheckout(ctx, reference)
}

func (g *StripeGateway) verifyCheckout(ctx context.Context, sessionID string) (*commands.PaymentResult, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, infra.WrapRepoErr("stripe checkout session fetch failed", err, infra.KindUpstream)
	}

	ref := sess.ID
	if sess.PaymentIntent != nil {
		ref = sess.PaymentIntent.ID
	}
	return &commands.PaymentResult{
		Paid:      sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Reference: ref,
	}, nil
}

func (g *StripeGateway) verifyIntent(ctx context.Context, intentID string) (*commands.PaymentResult, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, infra.WrapRepoErr("stripe payment intent fetch failed", err, infra.KindUpstream)
	}
	return &commands.PaymentResult{
		Paid:      intent.Status == stripe.PaymentIntentStatusSucceeded,
		Reference: intent.ID,
	}, nil
}
