package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/menu"
	"github.com/fekuna/omnipos-cafeteria-service/internal/menu/dto"
	"github.com/fekuna/omnipos-cafeteria-service/internal/menu/repository"
	"github.com/fekuna/omnipos-cafeteria-service/internal/metrics"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store/storetest"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (menu.UseCase, *store.Store, *metrics.Metrics) {
	t.Helper()
	s := storetest.Open(t)
	m := metrics.NewUnregistered()
	return NewMenuUseCase(repository.NewFileRepository(s), m, logger.NewNop()), s, m
}

func writeFile(t *testing.T, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	return path
}

func snapshot(t *testing.T, s *store.Store) ([]model.Category, []model.Meal) {
	t.Helper()
	var cats []model.Category
	var meals []model.Meal
	require.NoError(t, s.View(func(d *store.Data) error {
		cats = append(cats, d.Categories...)
		meals = append(meals, d.Meals...)
		return nil
	}))
	return cats, meals
}

const menuDoc = `{
	"categories": [
		{"id": 2, "name": "Renamed lunch"},
		{"id": 10, "name": "Dessert"}
	],
	"meals": [
		{"id": 5, "name": "Soup", "price": 150, "categoryId": 2},
		{"id": 8, "name": "Cake", "price": 99.9, "categoryId": 10, "imagePath": "img/cake.png"}
	]
}`

func TestImport_MergesAndAdvancesCounters(t *testing.T) {
	uc, s, m := newUseCase(t)
	ctx := context.Background()

	res, err := uc.Import(ctx, writeFile(t, menuDoc))
	require.NoError(t, err)
	assert.Equal(t, &dto.ImportResult{CategoriesAdded: 1, CategoriesSkipped: 1, MealsAdded: 2}, res)

	cats, meals := snapshot(t, s)
	require.Len(t, cats, 4)
	assert.Equal(t, "Lunch", cats[1].Name, "existing categories are not overwritten")
	assert.Equal(t, model.Category{ID: 10, Name: "Dessert"}, cats[3])
	require.Len(t, meals, 2)
	assert.Equal(t, "img/cake.png", meals[1].ImagePath)
	assert.Equal(t, "", meals[0].ImagePath)

	assert.Equal(t, 11, s.NextID(store.KindCategory))
	assert.Equal(t, 9, s.NextID(store.KindMeal))

	doc := storetest.ReadDocument(t, s.Path())
	assert.Len(t, doc.Meals, 2)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.MenuImports.WithLabelValues("ok")))
}

func TestImport_SecondImportIsIdempotentForCategoriesAndOverwritesMeals(t *testing.T) {
	uc, s, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Import(ctx, writeFile(t, menuDoc))
	require.NoError(t, err)
	catsBefore, _ := snapshot(t, s)

	modified := `{
		"categories": [{"id": 10, "name": "Sweets"}],
		"meals": [{"id": 5, "name": "Borscht", "price": 180, "categoryId": 2}]
	}`
	res, err := uc.Import(ctx, writeFile(t, modified))
	require.NoError(t, err)
	assert.Equal(t, &dto.ImportResult{CategoriesSkipped: 1, MealsUpdated: 1}, res)

	cats, meals := snapshot(t, s)
	assert.Equal(t, catsBefore, cats)
	require.Len(t, meals, 2)
	assert.Equal(t, 5, meals[0].ID)
	assert.Equal(t, "Borscht", meals[0].Name)
	assert.True(t, decimal.NewFromInt(180).Equal(meals[0].Price))

	_, err = uc.Import(ctx, writeFile(t, menuDoc))
	require.NoError(t, err)
	cats, meals = snapshot(t, s)
	assert.Len(t, cats, 4)
	assert.Len(t, meals, 2)
}

func TestImport_MalformedDocumentIsRejectedWhole(t *testing.T) {
	uc, s, m := newUseCase(t)
	ctx := context.Background()

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"meals": [`},
		{"not an object", `[]`},
		{"meals not an array", `{"meals": {"id": 1}}`},
		{"category without name", `{"categories": [{"id": 4}]}`},
		{"fractional id", `{"categories": [{"id": 4.5, "name": "x"}]}`},
		{"negative price", `{"meals": [{"id": 1, "name": "Soup", "price": -1, "categoryId": 1}]}`},
		{"price as string", `{"meals": [{"id": 1, "name": "Soup", "price": "1", "categoryId": 1}]}`},
		{"bad entry after good ones", `{
			"categories": [{"id": 20, "name": "Fine"}],
			"meals": [{"id": 1, "name": "Soup", "price": 1, "categoryId": 1}, {"id": 0, "name": "Bad", "price": 1, "categoryId": 1}]
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Import(ctx, writeFile(t, tt.raw))
			assert.ErrorIs(t, err, apperror.ErrImportFormat)
		})
	}

	cats, meals := snapshot(t, s)
	assert.Len(t, cats, 3)
	assert.Empty(t, meals)
	assert.Equal(t, float64(len(tests)), testutil.ToFloat64(m.MenuImports.WithLabelValues("error")))
}

func TestImport_MissingFile(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.Import(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, apperror.ErrPersistence)
}

func TestImport_EmptyDocument(t *testing.T) {
	uc, s, _ := newUseCase(t)

	res, err := uc.Import(context.Background(), writeFile(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, &dto.ImportResult{}, res)

	cats, _ := snapshot(t, s)
	assert.Len(t, cats, 3)
}

func TestExportThenImportRoundTrip(t *testing.T) {
	uc, s, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Import(ctx, writeFile(t, menuDoc))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "menu.json")
	doc, err := uc.Export(ctx, path)
	require.NoError(t, err)
	assert.Len(t, doc.Categories, 4)
	assert.Len(t, doc.Meals, 2)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := Decode(raw)
	require.NoError(t, err)
	assert.Len(t, decoded.Categories, 4)
	assert.Len(t, decoded.Meals, 2)
	assert.True(t, decimal.RequireFromString("99.9").Equal(decoded.Meals[1].Price))

	// Users and orders stay out of the menu document.
	assert.NotContains(t, string(raw), "users")
	assert.NotContains(t, string(raw), "orders")

	// Importing the export into the same store changes nothing.
	catsBefore, mealsBefore := snapshot(t, s)
	_, err = uc.Import(ctx, path)
	require.NoError(t, err)
	cats, meals := snapshot(t, s)
	assert.Equal(t, catsBefore, cats)
	assert.Equal(t, len(mealsBefore), len(meals))
}
