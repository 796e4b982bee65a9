// Package app composes web modules into a root handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/louisbranch/orgdash/internal/services/web/module"
)

// ComposeInput carries the module group and the fallback handler.
type ComposeInput struct {
	Modules []module.Module
	// NotFound serves requests no module owns. Defaults to http.NotFoundHandler.
	NotFound http.Handler
}

// Compose builds a root HTTP handler from modules.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)

	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, prefix, err := resolveMount(feature)
		if err != nil {
			return nil, err
		}
		if previous, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
		}
		seen[prefix] = feature.ID()
		root.Handle(prefix, mount.Handler)
	}

	notFound := input.NotFound
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}
	root.Handle("/", notFound)
	return root, nil
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := mount.Prefix
	if err := validatePrefix(prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if prefix == "/" {
		return module.Mount{}, "", fmt.Errorf("mount module %q: root prefix is reserved", feature.ID())
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

// ModuleHealth reports the availability of every module that implements
// module.HealthReporter, keyed by module id.
func ModuleHealth(modules []module.Module) map[string]bool {
	out := make(map[string]bool, len(modules))
	for _, feature := range modules {
		if feature == nil {
			continue
		}
		if reporter, ok := feature.(module.HealthReporter); ok {
			out[feature.ID()] = reporter.Healthy()
		}
	}
	return out
}
