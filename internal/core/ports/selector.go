package ports

import (
	"context"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
)

//go:generate mockery --name AttributeSelector --output ./mocks --outpkg mocks --case underscore
type AttributeSelector interface {
	Select(ctx context.Context) ([]domain.AttributeRef, error)
}
