package ports

import (
	"context"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
)

// MetadataFetcher reads the raw definition of one picklist field from an org.
//
//go:generate mockery --name MetadataFetcher --output ./mocks --outpkg mocks --case underscore
type MetadataFetcher interface {
	Type() string
	FetchField(ctx context.Context, attr domain.AttributeRef) (domain.RawPayload, error)
}

//go:generate mockery --name FieldDescriber --output ./mocks --outpkg mocks --case underscore
type FieldDescriber interface {
	DescribePicklistFields(ctx context.Context, object string) ([]domain.FieldInfo, error)
}

// Org bundles what the engine and selectors need from one side of the comparison.
type Org interface {
	MetadataFetcher
	FieldDescriber
}
