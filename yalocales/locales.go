// Package yalocales serves localized bot replies.
//
// Locales are JSON files named after their language tag ("en.json", "de.json").
// Nested objects are addressed with composite keys joined by dots:
//
//	{"subscription": {"started": "Welcome, {name}!"}}
//
// is read back with the key "subscription.started". A user's language code is
// matched against the loaded languages with golang.org/x/text/language, so "de-AT"
// is served from "de.json" and unknown languages fall back to the default one.
package yalocales

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"golang.org/x/text/language"
)

const (
	localeExt    = ".json"
	keySeparator = "."
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Localizer holds the compiled locales of every loaded language.
//
// Example usage:
//
//	loc := yalocales.NewLocalizer("en")
//	if err := loc.LoadLocales(embeddedLocales); err != nil {
//		log.Fatalf("failed to load locales: %v", err)
//	}
//
//	msg, err := loc.Format("de-AT", "subscription.started", map[string]string{"name": "Ann"})
type Localizer struct {
	fallbackLang string
	tags         []language.Tag
	matcher      language.Matcher
	data         map[string]map[string]string
}

// NewLocalizer creates an empty Localizer whose default language is fallbackLang.
func NewLocalizer(fallbackLang string) *Localizer {
	return &Localizer{
		fallbackLang: fallbackLang,
		data:         make(map[string]map[string]string),
	}
}

// LoadLocales reads every "<lang>.json" at the root of files. The default
// language must be among them, and every key it lacks while another language
// has is reported with ErrDefaultCoverage.
func (l *Localizer) LoadLocales(files fs.FS) yaerrors.Error {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return yaerrors.FromError(http.StatusInternalServerError, err, "[LOCALES] failed to read locales dir")
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != localeExt {
			continue
		}

		lang := strings.TrimSuffix(entry.Name(), localeExt)

		if _, err := language.Parse(lang); err != nil {
			return yaerrors.FromError(
				http.StatusInternalServerError,
				fmt.Errorf("%w: %s", ErrInvalidLanguage, lang),
				"[LOCALES] bad locale file name",
			)
		}

		data, err := fs.ReadFile(files, entry.Name())
		if err != nil {
			return yaerrors.FromError(http.StatusInternalServerError, err, "[LOCALES] failed to read "+entry.Name())
		}

		if err := l.processJSONFile(data, lang); err != nil {
			return err.Wrap("[LOCALES] failed to load " + entry.Name())
		}
	}

	if err := l.validateKeyCoverage(); err != nil {
		return err
	}

	l.compileMatcher()

	return nil
}

func (l *Localizer) processJSONFile(data []byte, lang string) yaerrors.Error {
	var tree map[string]any

	if err := json.Unmarshal(data, &tree); err != nil {
		return yaerrors.FromError(http.StatusInternalServerError, err, "[LOCALES] invalid json")
	}

	values := make(map[string]string)

	if err := flatten("", tree, values); err != nil {
		return yaerrors.FromError(http.StatusInternalServerError, err, "[LOCALES] invalid translation tree")
	}

	l.data[lang] = values

	return nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) error {
	for key, value := range tree {
		composite := key
		if prefix != "" {
			composite = prefix + keySeparator + key
		}

		switch v := value.(type) {
		case string:
			out[composite] = v
		case map[string]any:
			if err := flatten(composite, v, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: `%s` is %T", ErrInvalidTranslation, composite, value)
		}
	}

	return nil
}

func (l *Localizer) validateKeyCoverage() yaerrors.Error {
	fallback, ok := l.data[l.fallbackLang]
	if !ok {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			fmt.Errorf("%w: no `%s` locale", ErrDefaultCoverage, l.fallbackLang),
			"[LOCALES] default language is not loaded",
		)
	}

	for lang, values := range l.data {
		for key := range values {
			if _, ok := fallback[key]; !ok {
				return yaerrors.FromError(
					http.StatusInternalServerError,
					fmt.Errorf("%w: `%s` from `%s`", ErrDefaultCoverage, key, lang),
					"[LOCALES] default language lacks a key",
				)
			}
		}
	}

	return nil
}

// compileMatcher puts the fallback first so it wins when nothing matches.
func (l *Localizer) compileMatcher() {
	l.tags = []language.Tag{language.Make(l.fallbackLang)}

	for lang := range l.data {
		if lang != l.fallbackLang {
			l.tags = append(l.tags, language.Make(lang))
		}
	}

	l.matcher = language.NewMatcher(l.tags)
}

// Match returns the loaded language that serves langCode best.
func (l *Localizer) Match(langCode string) string {
	if l.matcher == nil || langCode == "" {
		return l.fallbackLang
	}

	_, index, confidence := l.matcher.Match(language.Make(langCode))
	if confidence == language.No {
		return l.fallbackLang
	}

	return l.tags[index].String()
}

// Get returns the value of key for the language matching langCode, falling back to
// the default language when the matched one lacks the key.
func (l *Localizer) Get(langCode, key string) (string, yaerrors.Error) {
	if value, ok := l.data[l.Match(langCode)][key]; ok {
		return value, nil
	}

	if value, ok := l.data[l.fallbackLang][key]; ok {
		return value, nil
	}

	return "", yaerrors.FromError(
		http.StatusInternalServerError,
		fmt.Errorf("%w: %s", ErrKeyNotFound, key),
		"[LOCALES] failed to get value",
	)
}

// Format is Get with {name} placeholders replaced from args. A placeholder
// missing from args fails with ErrMissingFormatArgs.
func (l *Localizer) Format(langCode, key string, args map[string]string) (string, yaerrors.Error) {
	raw, err := l.Get(langCode, key)
	if err != nil {
		return "", err.Wrap("[LOCALES] failed to get raw value")
	}

	var missing []string

	formatted := placeholderPattern.ReplaceAllStringFunc(raw, func(match string) string {
		name := match[1 : len(match)-1]

		value, ok := args[name]
		if !ok {
			missing = append(missing, name)

			return match
		}

		return value
	})

	if len(missing) > 0 {
		return "", yaerrors.FromError(
			http.StatusInternalServerError,
			fmt.Errorf("%w: %s", ErrMissingFormatArgs, strings.Join(missing, ", ")),
			fmt.Sprintf("[LOCALES] failed to format value for key '%s'", key),
		)
	}

	return formatted, nil
}
