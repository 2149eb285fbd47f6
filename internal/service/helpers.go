package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/assetflow/asset-service/internal/repository"
	apperrors "github.com/assetflow/asset-service/pkg/util"
)

// missingFields returns the sorted names whose values are blank.
func missingFields(fields map[string]string) []string {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// notFoundOr maps repository.ErrNotFound to a NOT_FOUND domain error.
func notFoundOr(err error, resource string, details map[string]any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, details)
	}
	return err
}

// outcomeOf labels a workflow result for metrics.
func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}
	return strings.ToLower(apperrors.CodeOf(err))
}

type noopMetrics struct{}

func (noopMetrics) RecordTransition(string, string) {}
func (noopMetrics) RecordReturn(string)             {}
