// Package selection decides which picklist attributes a run compares.
package selection

import (
	"context"
	"fmt"
	"strings"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

// ConfiguredSelector selects the configured fields of an object, or every
// picklist field the describer reports when no fields are configured.
type ConfiguredSelector struct {
	object    string
	fields    []string
	describer ports.FieldDescriber
	logger    ports.Logger
}

func NewConfiguredSelector(object string, fields []string, describer ports.FieldDescriber, logger ports.Logger) *ConfiguredSelector {
	return &ConfiguredSelector{
		object:    strings.TrimSpace(object),
		fields:    fields,
		describer: describer,
		logger:    logger,
	}
}

func (s *ConfiguredSelector) Select(ctx context.Context) ([]domain.AttributeRef, error) {
	if len(s.fields) > 0 {
		return Resolve(s.object, s.fields)
	}
	if s.object == "" {
		return nil, errors.NewUserFacing(errors.CodeSelectionError, "no object configured",
			"Set 'object' in the configuration or pass --object.")
	}

	s.logger.Infof(ctx, "No fields configured, comparing every picklist on %s", s.object)
	described, err := s.describer.DescribePicklistFields(ctx, s.object)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(described))
	for _, f := range described {
		names = append(names, f.Name)
	}
	return Resolve(s.object, names)
}

// Resolve turns field names into attribute references on object. Names that
// already carry an object ("Case.Origin") are taken as-is. Duplicates are
// dropped, keeping first-seen order.
func Resolve(object string, fields []string) ([]domain.AttributeRef, error) {
	refs := make([]domain.AttributeRef, 0, len(fields))
	seen := make(map[domain.AttributeRef]struct{}, len(fields))

	for _, raw := range fields {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		var ref domain.AttributeRef
		if strings.Contains(name, ".") {
			parsed, err := domain.ParseAttributeRef(name)
			if err != nil {
				return nil, errors.WrapUserFacing(err, errors.CodeSelectionError, err.Error(), "")
			}
			ref = parsed
		} else {
			if object == "" {
				return nil, errors.NewUserFacing(errors.CodeSelectionError,
					fmt.Sprintf("field '%s' has no object", name),
					"Set 'object' or qualify the field as <Object>.<Field>.")
			}
			ref = domain.AttributeRef{Object: object, Field: name}
		}

		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	return refs, nil
}
