package menu

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/menu/dto"
)

type Repository interface {
	// Snapshot copies the current categories and meals.
	Snapshot(ctx context.Context) (*dto.Document, error)
	// Merge applies doc in one store mutation. Categories with a known id are
	// skipped, meals with a known id are overwritten, everything else is
	// appended.
	Merge(ctx context.Context, doc *dto.Document) (*dto.ImportResult, error)
}
