// Package locale renders notice message ids into the session language.
package locale

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/predict-win/internal/domain"
)

//go:embed active.*.toml
var messageFiles embed.FS

// Translator localizes notices. Missing translations fall back to the
// default language and then to the message id itself.
type Translator struct {
	bundle   *i18n.Bundle
	fallback language.Tag
	matcher  language.Matcher
}

// New loads the embedded message files. defaultLang is a BCP 47 tag.
func New(defaultLang string) (*Translator, error) {
	fallback, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("parsing default language %q: %w", defaultLang, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	names, err := fs.Glob(messageFiles, "active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("listing message files: %w", err)
	}
	for _, name := range names {
		if _, err := bundle.LoadMessageFileFS(messageFiles, name); err != nil {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}
	}

	return &Translator{
		bundle:   bundle,
		fallback: fallback,
		matcher:  language.NewMatcher(bundle.LanguageTags()),
	}, nil
}

// Languages returns the tags with message files
func (t *Translator) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.String()
	}
	return out
}

// Negotiate picks the best supported language for an explicit choice or
// an Accept-Language header. The explicit choice wins when it parses.
func (t *Translator) Negotiate(explicit, acceptLanguage string) string {
	var wanted []language.Tag
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			wanted = append(wanted, tag)
		}
	}
	if len(wanted) == 0 && acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			wanted = tags
		}
	}
	if len(wanted) == 0 {
		return t.fallback.String()
	}

	tag, _, confidence := t.matcher.Match(wanted...)
	if confidence == language.No {
		return t.fallback.String()
	}
	base, _ := tag.Base()
	return base.String()
}

// Text renders message id in lang
func (t *Translator) Text(lang, id string, data map[string]any) string {
	loc := i18n.NewLocalizer(t.bundle, lang, t.fallback.String())
	text, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil || text == "" {
		return id
	}
	return text
}

// Localize fills in the text of n
func (t *Translator) Localize(lang string, n *domain.Notice) {
	if n == nil {
		return
	}
	n.Text = t.Text(lang, n.MessageID, n.Data)
}
