package service

import (
	"strings"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

// ParseOptions splits a comma separated option list. Values are trimmed,
// empty entries dropped and duplicates collapsed in first-seen order. A
// blank list yields the single DEFAULT option.
func ParseOptions(field, raw string) ([]string, error) {
	if domain.HasForbiddenOptionSeparator(raw) {
		return nil, apperrors.NewValidationError("use only commas to separate "+field,
			map[string]any{"field": field})
	}

	seen := make(map[string]struct{})
	var values []string
	for _, part := range strings.Split(raw, ",") {
		v := strings.TrimSpace(part)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	if len(values) == 0 {
		return []string{domain.DefaultOption}, nil
	}
	return values, nil
}
