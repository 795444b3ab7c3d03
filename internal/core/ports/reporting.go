package ports

import (
	"context"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
)

//go:generate mockery --name Reporter --output ./mocks --outpkg mocks --case underscore
type Reporter interface {
	Report(ctx context.Context, results []domain.AttributeResult) error
}
