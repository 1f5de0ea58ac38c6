// Package notify delivers best-effort admin notifications.
package notify

import (
	"context"
	"log"
)

const (
	EventAdoptionRequestCreated = "adoption_request.created"
	EventDonationPaid           = "donation.paid"
)

// Notifier delivers one event. Callers log failures and carry on.
type Notifier interface {
	Notify(ctx context.Context, event string, data any) error
}

// Publisher is the live feed the notifications are pushed to.
type Publisher interface {
	Publish(event string, data any) error
}

// LiveFeed logs every event and forwards it to connected admins.
type LiveFeed struct {
	pub Publisher
}

func NewLiveFeed(pub Publisher) *LiveFeed {
	return &LiveFeed{pub: pub}
}

func (f *LiveFeed) Notify(_ context.Context, event string, data any) error {
	log.Printf("notify: %s", event)
	if f.pub == nil {
		return nil
	}
	return f.pub.Publish(event, data)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Notify(context.Context, string, any) error { return nil }
