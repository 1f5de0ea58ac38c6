package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	events []string
	err    error
}

func (r *recorder) Publish(event string, _ any) error {
	r.events = append(r.events, event)
	return r.err
}

func TestLiveFeedForwards(t *testing.T) {
	rec := &recorder{}
	feed := NewLiveFeed(rec)

	assert.NoError(t, feed.Notify(context.Background(), EventDonationPaid, map[string]any{"id": 1}))
	assert.Equal(t, []string{EventDonationPaid}, rec.events)
}

func TestLiveFeedReturnsPublishError(t *testing.T) {
	feed := NewLiveFeed(&recorder{err: errors.New("full")})

	assert.EqualError(t, feed.Notify(context.Background(), EventAdoptionRequestCreated, nil), "full")
}
