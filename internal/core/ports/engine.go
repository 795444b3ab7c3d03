package ports

import "context"

type ComparisonEngine interface {
	Run(ctx context.Context) error
}
