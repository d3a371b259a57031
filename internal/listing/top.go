package listing

import (
	"context"

	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"bitbucket.org/realdreams/travel-site/internal/remote"
	"bitbucket.org/realdreams/travel-site/internal/schema"
	"bitbucket.org/realdreams/travel-site/internal/tools/slowlog"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	topToursLimit = 5
	SkeletonCount = 3
)

type TopSource interface {
	TopTours(ctx context.Context) ([]schema.Tour, error)
	ListCars(ctx context.Context, page, pageSize int) (*schema.Page[schema.Car], error)
}

type CategorySetter interface {
	SetCategory(ctx context.Context, category schema.Category) error
}

// TopSection is the home page highlight. Cards render only when both collections arrived;
// until then Skeletons placeholders stand in.
type TopSection struct {
	Tours     []TourCard
	Cars      []CarCard
	Ready     bool
	Selected  schema.Category
	Skeletons int
}

func LoadTop(ctx context.Context, source TopSource, selected schema.Category, tr i18n.Translator, log *zerolog.Logger) TopSection {
	section := TopSection{
		Selected:  selected,
		Skeletons: SkeletonCount,
	}
	if !section.Selected.Valid() {
		section.Selected = schema.CategoryTours
	}

	slowLog := slowlog.CreateLogger(log)
	defer slowLog.Track("top.load")()

	var (
		tours []schema.Tour
		cars  *schema.Page[schema.Car]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tours, err = source.TopTours(gctx)
		return err
	})
	g.Go(func() (err error) {
		cars, err = source.ListCars(gctx, remote.DefaultPage, remote.DefaultPageSize)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load top items")
		return section
	}

	if len(tours) > topToursLimit {
		tours = tours[:topToursLimit]
	}

	section.Tours = NewTourCards(tours, true, tr)
	section.Cars = []CarCard{}
	if cars != nil {
		section.Cars = NewCarCards(cars.Items, true)
	}
	section.Ready = true
	section.Skeletons = 0

	return section
}

// Dots is the carousel indicator count of the displayed collection, at least one.
func (s TopSection) Dots() int {
	count := len(s.Tours)
	if s.Selected == schema.CategoryCars {
		count = len(s.Cars)
	}

	if count < 1 {
		return 1
	}
	return count
}

func (s *TopSection) Select(ctx context.Context, prefs CategorySetter, category schema.Category) error {
	if err := prefs.SetCategory(ctx, category); err != nil {
		return err
	}

	s.Selected = category
	return nil
}
