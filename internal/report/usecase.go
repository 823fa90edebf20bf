package report

import "context"

type UseCase interface {
	// Generate renders report k over the current store contents.
	Generate(ctx context.Context, k Kind) (string, error)
}
