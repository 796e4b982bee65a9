// Package i18n holds the supported locale set shared by every service.
package i18n

import (
	"strings"

	"golang.org/x/text/language"

	_ "github.com/louisbranch/orgdash/internal/platform/i18n/catalog"
)

var (
	defaultTag    = language.MustParse("en-US")
	supportedTags = []language.Tag{
		defaultTag,
		language.MustParse("pt-BR"),
	}
	matcher = language.NewMatcher(supportedTags)
)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the fallback language tag.
func DefaultTag() language.Tag {
	return defaultTag
}

// ParseTag parses value and reports whether it matches a supported tag
// with at least high confidence.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultTag, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return defaultTag, false
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence < language.High {
		return defaultTag, false
	}
	return supportedTags[idx], true
}

// MatchTags returns the best supported tag for the preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return defaultTag
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return defaultTag
	}
	return supportedTags[idx]
}
