package selection

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

// Prompter asks the user for an object and then for fields on it.
type Prompter interface {
	AskObject(ctx context.Context, initial string) (string, error)
	AskFields(ctx context.Context, object string, fields []domain.FieldInfo) ([]string, error)
}

// InteractiveSelector lets the user pick an object and any of its picklist
// fields, as described by the source org.
type InteractiveSelector struct {
	object    string
	describer ports.FieldDescriber
	prompter  Prompter
	logger    ports.Logger
}

func NewInteractiveSelector(object string, describer ports.FieldDescriber, prompter Prompter, logger ports.Logger) *InteractiveSelector {
	if prompter == nil {
		prompter = HuhPrompter{}
	}
	return &InteractiveSelector{object: object, describer: describer, prompter: prompter, logger: logger}
}

func (s *InteractiveSelector) Select(ctx context.Context) ([]domain.AttributeRef, error) {
	object, err := s.prompter.AskObject(ctx, s.object)
	if err != nil {
		return nil, promptError(err)
	}
	object = strings.TrimSpace(object)

	fields, err := s.describer.DescribePicklistFields(ctx, object)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.NewUserFacing(errors.CodeSelectionError,
			fmt.Sprintf("object '%s' has no picklist fields", object), "Choose another object.")
	}
	s.logger.Debugf(ctx, "Offering %d picklist fields on %s", len(fields), object)

	chosen, err := s.prompter.AskFields(ctx, object, fields)
	if err != nil {
		return nil, promptError(err)
	}
	return Resolve(object, chosen)
}

func promptError(err error) error {
	if stderrors.Is(err, huh.ErrUserAborted) {
		return errors.NewUserFacing(errors.CodeSelectionError, "selection cancelled", "")
	}
	return errors.Wrap(err, errors.CodeSelectionError, "interactive selection failed")
}

// HuhPrompter renders the prompts in the terminal.
type HuhPrompter struct{}

func (HuhPrompter) AskObject(ctx context.Context, initial string) (string, error) {
	object := initial
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Object API name").
			Description("For example Account, Opportunity or My_Object__c").
			Value(&object).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("object is required")
				}
				return nil
			}),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return object, nil
}

func (HuhPrompter) AskFields(ctx context.Context, object string, fields []domain.FieldInfo) ([]string, error) {
	options := make([]huh.Option[string], 0, len(fields))
	for _, f := range fields {
		options = append(options, huh.NewOption(f.DisplayName(), f.Name))
	}

	var selected []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(fmt.Sprintf("Picklists on %s to compare", object)).
			Options(options...).
			Value(&selected).
			Validate(func(v []string) error {
				if len(v) == 0 {
					return fmt.Errorf("select at least one field")
				}
				return nil
			}),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}
	return selected, nil
}
