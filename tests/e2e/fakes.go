//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"sync"

	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

// FakePaymentGateway stands in for Stripe. References are minted locally and
// can be flipped to paid from the test body. Verifying a checkout session
// reports the underlying intent as the settlement reference, the way the real
// provider does, so reference canonicalization is exercised.
type FakePaymentGateway struct {
	mu        sync.Mutex
	counter   int
	paid      map[string]bool
	canonical map[string]string
	// Fail makes every call return an upstream error.
	Fail bool
}

func NewFakePaymentGateway() *FakePaymentGateway {
	return &FakePaymentGateway{paid: map[string]bool{}, canonical: map[string]string{}}
}

func (g *FakePaymentGateway) CreateCheckoutSession(_ context.Context, _ int64, _ uuid.UUID, _ map[string]string) (*commands.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Fail {
		return nil, fmt.Errorf("gateway unavailable")
	}
	g.counter++
	id := fmt.Sprintf("cs_test_%d", g.counter)
	g.canonical[id] = fmt.Sprintf("pi_settled_%d", g.counter)
	return &commands.CheckoutSession{SessionID: id, RedirectURL: "https://pay.example/" + id}, nil
}

func (g *FakePaymentGateway) CreateEmbeddedIntent(_ context.Context, _ int64, _ uuid.UUID, _ map[string]string) (*commands.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Fail {
		return nil, fmt.Errorf("gateway unavailable")
	}
	g.counter++
	id := fmt.Sprintf("pi_test_%d", g.counter)
	return &commands.PaymentIntent{IntentID: id, ClientSecret: id + "_secret"}, nil
}

func (g *FakePaymentGateway) VerifySession(_ context.Context, reference string) (*commands.PaymentResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Fail {
		return nil, fmt.Errorf("gateway unavailable")
	}
	settled := reference
	if c, ok := g.canonical[reference]; ok {
		settled = c
	}
	return &commands.PaymentResult{Paid: g.paid[reference], Reference: settled}, nil
}

// MarkPaid simulates the customer completing payment on the provider side.
func (g *FakePaymentGateway) MarkPaid(reference string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paid[reference] = true
}

// RecordingNotifier keeps sent notifications in memory.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []SentNotification
}

type SentNotification struct {
	Recipient string
	Template  string
	Data      map[string]any
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) Notify(_ context.Context, recipient, template string, data map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, SentNotification{Recipient: recipient, Template: template, Data: data})
	return nil
}

func (n *RecordingNotifier) Sent() []SentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]SentNotification, len(n.sent))
	copy(out, n.sent)
	return out
}
