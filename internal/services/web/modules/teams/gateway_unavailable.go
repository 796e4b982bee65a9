package teams

import (
	"context"

	"github.com/louisbranch/orgdash/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/orgdash/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) LoadOrganization(context.Context, string) (Organization, error) {
	return Organization{}, apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable", "organization api is not configured")
}

func (unavailableGateway) LoadProjects(context.Context, string) ([]Project, error) {
	return nil, apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable", "organization api is not configured")
}

func (unavailableGateway) UpdateProject(_ context.Context, _ string, _ string, _ ProjectUpdate, callbacks apiclient.Callbacks) error {
	return failCallbacks(callbacks)
}

func (unavailableGateway) LeaveTeam(_ context.Context, _ string, _ string, callbacks apiclient.Callbacks) error {
	return failCallbacks(callbacks)
}

func failCallbacks(callbacks apiclient.Callbacks) error {
	err := apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable", "organization api is not configured")
	if callbacks.Error != nil {
		callbacks.Error(err)
	}
	return err
}
