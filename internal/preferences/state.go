package preferences

import (
	"context"

	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"bitbucket.org/realdreams/travel-site/internal/schema"
	"github.com/rs/zerolog"
)

// State is the per-request view of a visitor's preferences. Setters update memory and write
// through to storage; the last write wins.
type State struct {
	storage  Storage
	logger   *zerolog.Logger
	language i18n.Lang
	category schema.Category
}

func NewState(logger *zerolog.Logger) *State {
	return &State{
		logger:   logger,
		language: i18n.Default,
		category: schema.CategoryTours,
	}
}

// Hydrate reads both keys. Read failures are logged and leave the defaults in place.
func (s *State) Hydrate(ctx context.Context, storage Storage, acceptLanguage string) {
	s.storage = storage

	stored, _ := s.read(ctx, LanguageKey)
	s.language = i18n.Resolve(stored, acceptLanguage)

	s.category = schema.CategoryTours
	if stored, ok := s.read(ctx, CategoryKey); ok {
		if category := schema.Category(stored); category.Valid() {
			s.category = category
		}
	}
}

func (s *State) read(ctx context.Context, key Key) (string, bool) {
	if s.storage == nil {
		return "", false
	}

	value, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", string(key)).Msg("failed to read preference")
		return "", false
	}

	return value, ok
}

func (s *State) Language() i18n.Lang {
	return s.language
}

func (s *State) Category() schema.Category {
	return s.category
}

func (s *State) SetLanguage(ctx context.Context, lang i18n.Lang) error {
	if !lang.Valid() {
		return schema.ErrInvalidPreference
	}

	s.language = lang
	return s.write(ctx, LanguageKey, string(lang))
}

func (s *State) SetCategory(ctx context.Context, category schema.Category) error {
	if !category.Valid() {
		return schema.ErrInvalidPreference
	}

	s.category = category
	return s.write(ctx, CategoryKey, string(category))
}

func (s *State) write(ctx context.Context, key Key, value string) error {
	if s.storage == nil {
		return nil
	}

	return s.storage.Set(ctx, key, value)
}
