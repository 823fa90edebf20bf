package menu

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/menu/dto"
)

type UseCase interface {
	// Export writes the menu to path and returns what was written.
	Export(ctx context.Context, path string) (*dto.Document, error)
	// Import merges the menu at path into the store. A malformed document is
	// rejected with apperror.ErrImportFormat before anything is merged.
	Import(ctx context.Context, path string) (*dto.ImportResult, error)
}
