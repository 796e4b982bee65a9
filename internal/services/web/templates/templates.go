// Package templates holds the shared app shell and reusable view components.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ generate

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Text renders escaped text.
func Text(value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(value))
		return err
	})
}
