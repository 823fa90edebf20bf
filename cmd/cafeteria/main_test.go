package main

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-cafeteria-service/config"
	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store/storetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCartItem(t *testing.T) {
	tests := []struct {
		in      string
		id, qty int
		wantErr bool
	}{
		{in: "7", id: 7, qty: 1},
		{in: "7x3", id: 7, qty: 3},
		{in: "x3", wantErr: true},
		{in: "7x0", wantErr: true},
		{in: "soup", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, qty, err := parseCartItem(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.qty, qty)
		})
	}
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Store.DataFile = filepath.Join(dir, "cafeteria_data.json")
	ctx := context.Background()

	a, err := build(ctx, cfg, logger.NewNop())
	require.NoError(t, err)

	menuFile := filepath.Join(dir, "menu.json")
	require.NoError(t, os.WriteFile(menuFile, []byte(`{
		"meals": [
			{"id": 1, "name": "Soup", "price": 150, "categoryId": 2},
			{"id": 2, "name": "Bread", "price": 40, "categoryId": 2}
		]
	}`), 0o644))

	require.NoError(t, a.run(ctx, "import-menu", []string{menuFile}))
	require.NoError(t, a.run(ctx, "register", []string{"ann", "pw"}))
	require.NoError(t, a.run(ctx, "order", []string{"ann", "pw", "1x2", "2"}))
	require.NoError(t, a.run(ctx, "report", []string{"revenue"}))
	require.NoError(t, a.run(ctx, "sort-menu", []string{"price-desc"}))
	require.NoError(t, a.run(ctx, "orders", []string{"-user", "ann"}))

	out := filepath.Join(dir, "orders.json")
	require.NoError(t, a.run(ctx, "export-orders", []string{"-user", "ann", out}))
	_, err = os.Stat(out)
	require.NoError(t, err)

	err = a.run(ctx, "order", []string{"admin", "admin", "1"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Error(t, a.run(ctx, "report", []string{"profit"}))
	assert.Error(t, a.run(ctx, "nope", nil))

	doc := storetest.ReadDocument(t, cfg.Store.DataFile)
	require.Len(t, doc.Users, 2)
	assert.True(t, decimal.NewFromInt(660).Equal(doc.Users[1].Balance))
	require.Len(t, doc.Orders, 1)
}

func TestMetricsMux(t *testing.T) {
	cfg := config.Default()
	cfg.Store.DataFile = filepath.Join(t.TempDir(), "cafeteria_data.json")

	a, err := build(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	menuFile := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(menuFile, []byte(`{"meals": [{"id": 1, "name": "Soup", "price": 150, "categoryId": 2}]}`), 0o644))
	require.NoError(t, a.run(ctx, "import-menu", []string{menuFile}))
	require.NoError(t, a.run(ctx, "register", []string{"ann", "pw"}))
	require.NoError(t, a.run(ctx, "order", []string{"ann", "pw", "1x2"}))

	rec := httptest.NewRecorder()
	metricsMux(a.registry).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "cafeteria_store_saves_total")
	assert.Contains(t, body, "cafeteria_orders_placed_total 1")
	assert.Contains(t, body, "cafeteria_order_revenue_total 300")
	assert.Contains(t, body, `cafeteria_menu_imports_total{result="ok"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
