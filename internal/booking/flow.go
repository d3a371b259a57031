package booking

import (
	"context"
	"time"

	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"bitbucket.org/realdreams/travel-site/internal/schema"
	"bitbucket.org/realdreams/travel-site/internal/tools/converting"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/rs/zerolog"
)

type Kind string

const (
	KindTour Kind = "tour"
	KindCar  Kind = "car"
)

type State int

const (
	Closed State = iota
	Open
	Submitting
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	}
	return "closed"
}

type Form struct {
	Name      string `form:"name" json:"name"`
	Email     string `form:"email" json:"email"`
	Phone     string `form:"phone" json:"phone"`
	People    int    `form:"people" json:"people"`
	StartDate string `form:"start_date" json:"start_date"`
	EndDate   string `form:"end_date" json:"end_date"`
}

func NewForm() Form {
	return Form{People: 1}
}

type NoticeKind string

const (
	Success NoticeKind = "success"
	Failure NoticeKind = "failure"
)

type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Key     string     `json:"key"`
	Message string     `json:"message,omitempty"`
}

func (n Notice) Translate(tr i18n.Translator) Notice {
	n.Message = tr.T(n.Key)
	return n
}

type Result struct {
	Success  bool   `json:"success"`
	Notice   Notice `json:"notice"`
	Redirect string `json:"redirect,omitempty"`
}

type Submitter interface {
	CreateTourBooking(ctx context.Context, booking schema.TourBooking) (bool, error)
	CreateCarBooking(ctx context.Context, booking schema.CarBooking) (bool, error)
}

// Flow is the booking dialog of one tour or car.
type Flow struct {
	Kind   Kind
	ItemID int64
	State  State
	Form   Form
	Notice *Notice
	logger *zerolog.Logger
}

func NewFlow(kind Kind, itemID int64, log *zerolog.Logger) *Flow {
	return &Flow{
		Kind:   kind,
		ItemID: itemID,
		State:  Closed,
		Form:   NewForm(),
		logger: log,
	}
}

func (f *Flow) Open() {
	f.State = Open
}

func (f *Flow) Close() {
	f.State = Closed
}

// Submit sends the form. On success the form is reset and the dialog closes; on any failure it
// stays open with the form untouched.
func (f *Flow) Submit(ctx context.Context, submitter Submitter, prefs schema.Category) Result {
	if f.ItemID <= 0 {
		return f.fail("error_message")
	}

	f.State = Submitting

	ok, err := f.send(ctx, submitter)
	if err != nil {
		f.logger.Error().
			Err(err).
			Str("kind", string(f.Kind)).
			Int64("item_id", f.ItemID).
			Msg("booking request failed")

		return f.fail("server_error")
	}

	if !ok {
		return f.fail("error_message")
	}

	f.Form = NewForm()
	f.State = Closed

	result := Result{
		Success: true,
		Notice:  Notice{Kind: Success, Key: "success_message"},
	}
	f.Notice = &result.Notice

	if f.Kind == KindCar {
		result.Redirect = "/browse?show=second"
		if prefs == schema.CategoryTours {
			result.Redirect = "/browse?show=first"
		}
	}

	return result
}

func (f *Flow) fail(key string) Result {
	f.State = Open

	result := Result{Notice: Notice{Kind: Failure, Key: key}}
	f.Notice = &result.Notice

	return result
}

func (f *Flow) send(ctx context.Context, submitter Submitter) (bool, error) {
	people := f.Form.People
	if people <= 0 {
		people = 1
	}

	if f.Kind == KindCar {
		return submitter.CreateCarBooking(ctx, schema.CarBooking{
			Name:      f.Form.Name,
			Email:     openapi_types.Email(f.Form.Email),
			Phone:     converting.NonEmpty(f.Form.Phone),
			People:    people,
			CarID:     f.ItemID,
			StartDate: parseDate(f.Form.StartDate),
			EndDate:   parseDate(f.Form.EndDate),
		})
	}

	return submitter.CreateTourBooking(ctx, schema.TourBooking{
		Name:   f.Form.Name,
		Email:  openapi_types.Email(f.Form.Email),
		Phone:  converting.NonEmpty(f.Form.Phone),
		People: people,
		TourID: f.ItemID,
	})
}

func parseDate(value string) *openapi_types.Date {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil
	}
	return &openapi_types.Date{Time: parsed}
}
