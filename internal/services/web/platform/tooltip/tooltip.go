// Package tooltip attaches hover hints to rendered elements.
package tooltip

import (
	"strings"

	"github.com/a-h/templ"
)

// Registrar turns hint text into element attributes.
type Registrar interface {
	Attrs(text string) templ.Attributes
}

// Title renders hints as native title attributes plus a data attribute the
// page script can enhance.
type Title struct{}

// Attrs implements Registrar.
func (Title) Attrs(text string) templ.Attributes {
	text = strings.TrimSpace(text)
	if text == "" {
		return templ.Attributes{}
	}
	return templ.Attributes{
		"title":        text,
		"aria-label":   text,
		"data-tooltip": text,
	}
}

// OrDefault returns r, or Title when r is nil.
func OrDefault(r Registrar) Registrar {
	if r == nil {
		return Title{}
	}
	return r
}
