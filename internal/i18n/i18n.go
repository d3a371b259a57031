package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

type Lang string

const (
	Uzbek   Lang = "uz"
	Russian Lang = "ru"
	English Lang = "en"

	Default = Uzbek
)

var Supported = []Lang{Uzbek, Russian, English}

func (l Lang) Valid() bool {
	switch l {
	case Uzbek, Russian, English:
		return true
	}
	return false
}

func Parse(value string) (Lang, bool) {
	lang := Lang(strings.ToLower(strings.TrimSpace(value)))
	return lang, lang.Valid()
}

// Resolve picks the stored language when valid, then the browser's primary locale when it is
// Russian or English, then the default.
func Resolve(stored, acceptLanguage string) Lang {
	if lang, ok := Parse(stored); ok {
		return lang
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}

	base, _ := tags[0].Base()
	switch {
	case strings.HasPrefix(base.String(), string(Russian)):
		return Russian
	case strings.HasPrefix(base.String(), string(English)):
		return English
	}

	return Default
}

//go:embed translations/*.json
var translationFiles embed.FS

type Catalog struct {
	messages map[Lang]map[string]string
}

func Load() (*Catalog, error) {
	catalog := &Catalog{messages: make(map[Lang]map[string]string, len(Supported))}

	for _, lang := range Supported {
		content, err := translationFiles.ReadFile(fmt.Sprintf("translations/%s.json", lang))
		if err != nil {
			return nil, err
		}

		messages := map[string]string{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("translations/%s.json: %w", lang, err)
		}

		catalog.messages[lang] = messages
	}

	return catalog, nil
}

func MustLoad() *Catalog {
	catalog, err := Load()
	if err != nil {
		panic(err)
	}
	return catalog
}

func (c *Catalog) For(lang Lang) Translator {
	if !lang.Valid() {
		lang = Default
	}
	return Translator{lang: lang, messages: c.messages[lang]}
}

type Translator struct {
	lang     Lang
	messages map[string]string
}

func (t Translator) Lang() Lang {
	return t.lang
}

// T returns the key itself when no translation exists.
func (t Translator) T(key string) string {
	if message, ok := t.messages[key]; ok {
		return message
	}
	return key
}
