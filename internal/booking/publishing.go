package booking

import (
	"context"
	"time"

	"bitbucket.org/realdreams/travel-site/internal/events"
	"bitbucket.org/realdreams/travel-site/internal/schema"
	"github.com/rs/zerolog"
)

// PublishTimeout bounds how long a booking answer waits on the event broker.
var PublishTimeout = 2 * time.Second

type publishingSubmitter struct {
	next      Submitter
	publisher events.Publisher
	logger    *zerolog.Logger
}

// NewPublishingSubmitter reports every answered submission as a BookingSubmitted event.
// Publishing failures are logged and never change the outcome.
func NewPublishingSubmitter(next Submitter, publisher events.Publisher, log *zerolog.Logger) Submitter {
	return &publishingSubmitter{
		next:      next,
		publisher: publisher,
		logger:    log,
	}
}

func (p *publishingSubmitter) CreateTourBooking(ctx context.Context, booking schema.TourBooking) (bool, error) {
	ok, err := p.next.CreateTourBooking(ctx, booking)
	if err == nil {
		p.publish(ctx, KindTour, booking.TourID, booking.People, ok)
	}
	return ok, err
}

func (p *publishingSubmitter) CreateCarBooking(ctx context.Context, booking schema.CarBooking) (bool, error) {
	ok, err := p.next.CreateCarBooking(ctx, booking)
	if err == nil {
		p.publish(ctx, KindCar, booking.CarID, booking.People, ok)
	}
	return ok, err
}

// publish outlives a cancelled request but never holds the answer past PublishTimeout.
func (p *publishingSubmitter) publish(ctx context.Context, kind Kind, itemID int64, people int, success bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), PublishTimeout)
	defer cancel()

	err := p.publisher.PublishBooking(ctx, events.BookingSubmitted{
		Kind:        string(kind),
		ItemID:      itemID,
		People:      people,
		Success:     success,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		p.logger.Warn().Err(err).Str("kind", string(kind)).Msg("failed to publish booking event")
	}
}
