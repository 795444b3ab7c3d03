package selection_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/picklist-drift-detector/internal/adapters/selection"
	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports/mocks"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
	"github.com/olusolaa/picklist-drift-detector/internal/log"
)

var accountPicklists = []domain.FieldInfo{
	{Name: "Industry", Label: "Industry", Type: "picklist"},
	{Name: "Rating", Label: "Account Rating", Type: "picklist"},
}

func TestResolve(t *testing.T) {
	refs, err := selection.Resolve("Account", []string{"Industry", " Rating ", "Case.Origin", "Industry", ""})
	require.NoError(t, err)
	assert.Equal(t, []domain.AttributeRef{
		{Object: "Account", Field: "Industry"},
		{Object: "Account", Field: "Rating"},
		{Object: "Case", Field: "Origin"},
	}, refs)

	_, err = selection.Resolve("", []string{"Industry"})
	assert.Equal(t, errors.CodeSelectionError, errors.GetCode(err))

	_, err = selection.Resolve("Account", []string{"Account.Industry.Extra"})
	assert.Equal(t, errors.CodeSelectionError, errors.GetCode(err))
}

func TestConfiguredSelector(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit fields skip describe", func(t *testing.T) {
		describer := mocks.NewFieldDescriber(t)
		s := selection.NewConfiguredSelector("Account", []string{"Industry"}, describer, log.NewNop())

		refs, err := s.Select(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.AttributeRef{{Object: "Account", Field: "Industry"}}, refs)
	})

	t.Run("all picklists of the object", func(t *testing.T) {
		describer := mocks.NewFieldDescriber(t)
		describer.On("DescribePicklistFields", mock.Anything, "Account").Return(accountPicklists, nil).Once()
		s := selection.NewConfiguredSelector("Account", nil, describer, log.NewNop())

		refs, err := s.Select(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.AttributeRef{
			{Object: "Account", Field: "Industry"},
			{Object: "Account", Field: "Rating"},
		}, refs)
	})

	t.Run("describe failure propagates", func(t *testing.T) {
		describer := mocks.NewFieldDescriber(t)
		describer.On("DescribePicklistFields", mock.Anything, "Acount").
			Return(nil, errors.New(errors.CodeResourceNotFound, "object 'Acount' not found"))
		s := selection.NewConfiguredSelector("Acount", nil, describer, log.NewNop())

		_, err := s.Select(ctx)
		assert.Equal(t, errors.CodeResourceNotFound, errors.GetCode(err))
	})

	t.Run("nothing configured", func(t *testing.T) {
		s := selection.NewConfiguredSelector("", nil, mocks.NewFieldDescriber(t), log.NewNop())
		_, err := s.Select(ctx)
		assert.Equal(t, errors.CodeSelectionError, errors.GetCode(err))
	})
}

type scriptedPrompter struct {
	object    string
	fields    []string
	err       error
	offered   []domain.FieldInfo
	initialIn string
}

func (p *scriptedPrompter) AskObject(_ context.Context, initial string) (string, error) {
	p.initialIn = initial
	if p.err != nil {
		return "", p.err
	}
	return p.object, nil
}

func (p *scriptedPrompter) AskFields(_ context.Context, _ string, fields []domain.FieldInfo) ([]string, error) {
	p.offered = fields
	return p.fields, nil
}

func TestInteractiveSelector(t *testing.T) {
	ctx := context.Background()

	t.Run("picks fields from describe", func(t *testing.T) {
		describer := mocks.NewFieldDescriber(t)
		describer.On("DescribePicklistFields", mock.Anything, "Account").Return(accountPicklists, nil)
		prompter := &scriptedPrompter{object: " Account ", fields: []string{"Rating"}}

		s := selection.NewInteractiveSelector("Lead", describer, prompter, log.NewNop())
		refs, err := s.Select(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.AttributeRef{{Object: "Account", Field: "Rating"}}, refs)
		assert.Equal(t, "Lead", prompter.initialIn)
		assert.Equal(t, accountPicklists, prompter.offered)
	})

	t.Run("object without picklists", func(t *testing.T) {
		describer := mocks.NewFieldDescriber(t)
		describer.On("DescribePicklistFields", mock.Anything, "Note").Return([]domain.FieldInfo{}, nil)

		s := selection.NewInteractiveSelector("", describer, &scriptedPrompter{object: "Note"}, log.NewNop())
		_, err := s.Select(ctx)
		assert.Equal(t, errors.CodeSelectionError, errors.GetCode(err))
	})

	t.Run("user aborts", func(t *testing.T) {
		s := selection.NewInteractiveSelector("", mocks.NewFieldDescriber(t),
			&scriptedPrompter{err: huh.ErrUserAborted}, log.NewNop())
		_, err := s.Select(ctx)
		assert.Equal(t, errors.CodeSelectionError, errors.GetCode(err))
		msg, _, _ := errors.GetUserFacingMessage(err)
		assert.Equal(t, "selection cancelled", msg)
	})

	t.Run("prompt failure", func(t *testing.T) {
		s := selection.NewInteractiveSelector("", mocks.NewFieldDescriber(t),
			&scriptedPrompter{err: stderrors.New("no tty")}, log.NewNop())
		_, err := s.Select(ctx)
		assert.Equal(t, errors.CodeSelectionError, errors.GetCode(err))
	})
}
