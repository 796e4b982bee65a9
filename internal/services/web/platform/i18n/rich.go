package i18n

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// Element renders the inner text of one rich message token.
type Element func(inner string) templ.Component

// Link returns an Element rendering an anchor to href.
func Link(href string) Element {
	return func(inner string) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, `<a href="`+templ.EscapeString(string(templ.URL(href)))+`">`+templ.EscapeString(inner)+`</a>`)
			return err
		})
	}
}

// Rich translates key and interpolates [name:inner] tokens with elements.
// A token without a matching element renders its inner text; malformed
// brackets render literally.
func Rich(loc Localizer, key message.Reference, elements map[string]Element) templ.Component {
	text := T(loc, key)
	segments := parseRich(text)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, segment := range segments {
			if segment.name == "" {
				if _, err := io.WriteString(w, templ.EscapeString(segment.text)); err != nil {
					return err
				}
				continue
			}
			element, ok := elements[segment.name]
			if !ok || element == nil {
				if _, err := io.WriteString(w, templ.EscapeString(segment.text)); err != nil {
					return err
				}
				continue
			}
			if err := element(segment.text).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

type richSegment struct {
	name string
	text string
}

func parseRich(value string) []richSegment {
	var segments []richSegment
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, richSegment{text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(value); {
		open := strings.IndexByte(value[i:], '[')
		if open < 0 {
			literal.WriteString(value[i:])
			break
		}
		literal.WriteString(value[i : i+open])
		start := i + open
		end := strings.IndexByte(value[start:], ']')
		if end < 0 {
			literal.WriteString(value[start:])
			break
		}
		body := value[start+1 : start+end]
		colon := strings.IndexByte(body, ':')
		if colon <= 0 || strings.ContainsRune(body, '[') || !isTokenName(body[:colon]) {
			literal.WriteByte('[')
			i = start + 1
			continue
		}
		flush()
		segments = append(segments, richSegment{name: body[:colon], text: body[colon+1:]})
		i = start + end + 1
	}
	flush()
	return segments
}

func isTokenName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return name != ""
}
