package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/menu"
	"github.com/fekuna/omnipos-cafeteria-service/internal/menu/dto"
	"github.com/fekuna/omnipos-cafeteria-service/internal/metrics"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type menuUseCase struct {
	repo    menu.Repository
	metrics *metrics.Metrics
	logger  logger.ZapLogger
}

func NewMenuUseCase(repo menu.Repository, m *metrics.Metrics, log logger.ZapLogger) menu.UseCase {
	return &menuUseCase{
		repo:    repo,
		metrics: m,
		logger:  log,
	}
}

func (uc *menuUseCase) Export(ctx context.Context, path string) (*dto.Document, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: export path is required", apperror.ErrInvalidInput)
	}

	doc, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.WriteJSONFile(path, doc); err != nil {
		uc.logger.Error("failed to export menu", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Menu exported",
		zap.String("path", path),
		zap.Int("categories", len(doc.Categories)),
		zap.Int("meals", len(doc.Meals)),
	)
	return doc, nil
}

func (uc *menuUseCase) Import(ctx context.Context, path string) (res *dto.ImportResult, err error) {
	defer func() { uc.metrics.ObserveImport(err) }()

	if path == "" {
		return nil, fmt.Errorf("%w: import path is required", apperror.ErrInvalidInput)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", apperror.ErrPersistence, path, err)
	}

	doc, err := Decode(raw)
	if err != nil {
		uc.logger.Warn("Rejected menu import", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	res, err = uc.repo.Merge(ctx, doc)
	if err != nil {
		uc.logger.Error("failed to merge menu", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Menu imported",
		zap.String("path", path),
		zap.Int("categories_added", res.CategoriesAdded),
		zap.Int("categories_skipped", res.CategoriesSkipped),
		zap.Int("meals_added", res.MealsAdded),
		zap.Int("meals_updated", res.MealsUpdated),
	)
	return res, nil
}

// Decode checks the shape of a menu document and decodes it. Either array may
// be absent. Every entry needs a positive integer id and a name; meals also
// need a non-negative price and a category id.
func Decode(raw []byte) (*dto.Document, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: not valid JSON", apperror.ErrImportFormat)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", apperror.ErrImportFormat)
	}

	if err := checkArray(root.Get("categories"), "categories", checkCategory); err != nil {
		return nil, err
	}
	if err := checkArray(root.Get("meals"), "meals", checkMeal); err != nil {
		return nil, err
	}

	var doc dto.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrImportFormat, err)
	}
	return &doc, nil
}

func checkArray(v gjson.Result, key string, check func(gjson.Result) error) error {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsArray() {
		return fmt.Errorf("%w: %s must be an array", apperror.ErrImportFormat, key)
	}
	for i, item := range v.Array() {
		if err := check(item); err != nil {
			return fmt.Errorf("%w: %s[%d]: %v", apperror.ErrImportFormat, key, i, err)
		}
	}
	return nil
}

func checkCategory(item gjson.Result) error {
	if !item.IsObject() {
		return errors.New("not an object")
	}
	if err := checkID(item.Get("id"), "id"); err != nil {
		return err
	}
	if item.Get("name").Type != gjson.String {
		return errors.New("name must be a string")
	}
	return nil
}

func checkMeal(item gjson.Result) error {
	if err := checkCategory(item); err != nil {
		return err
	}
	price := item.Get("price")
	if price.Type != gjson.Number || price.Float() < 0 {
		return errors.New("price must be a non-negative number")
	}
	if err := checkID(item.Get("categoryId"), "categoryId"); err != nil {
		return err
	}
	if p := item.Get("imagePath"); p.Exists() && p.Type != gjson.String && p.Type != gjson.Null {
		return errors.New("imagePath must be a string")
	}
	return nil
}

func checkID(v gjson.Result, field string) error {
	if v.Type != gjson.Number || v.Float() != float64(v.Int()) || v.Int() <= 0 {
		return fmt.Errorf("%s must be a positive integer", field)
	}
	return nil
}
