package templates

import "strings"

// AppToast is one notice rendered by the app shell.
type AppToast struct {
	Kind    string
	Message string
}

func toastKind(toast AppToast) string {
	if kind := strings.TrimSpace(toast.Kind); kind != "" {
		return kind
	}
	return "info"
}
