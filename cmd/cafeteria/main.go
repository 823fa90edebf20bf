package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-cafeteria-service/config"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/metrics"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	catRepoPkg "github.com/fekuna/omnipos-cafeteria-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-cafeteria-service/internal/category/usecase"

	"github.com/fekuna/omnipos-cafeteria-service/internal/meal"
	mealDto "github.com/fekuna/omnipos-cafeteria-service/internal/meal/dto"
	mealRepoPkg "github.com/fekuna/omnipos-cafeteria-service/internal/meal/repository"
	mealUCPkg "github.com/fekuna/omnipos-cafeteria-service/internal/meal/usecase"

	"github.com/fekuna/omnipos-cafeteria-service/internal/category"
	"github.com/fekuna/omnipos-cafeteria-service/internal/menu"
	menuRepoPkg "github.com/fekuna/omnipos-cafeteria-service/internal/menu/repository"
	menuUCPkg "github.com/fekuna/omnipos-cafeteria-service/internal/menu/usecase"

	"github.com/fekuna/omnipos-cafeteria-service/internal/order"
	orderDto "github.com/fekuna/omnipos-cafeteria-service/internal/order/dto"
	orderRepoPkg "github.com/fekuna/omnipos-cafeteria-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-cafeteria-service/internal/order/usecase"

	"github.com/fekuna/omnipos-cafeteria-service/internal/report"
	reportUCPkg "github.com/fekuna/omnipos-cafeteria-service/internal/report/usecase"

	"github.com/fekuna/omnipos-cafeteria-service/internal/session"
	"github.com/fekuna/omnipos-cafeteria-service/internal/user"
	userDto "github.com/fekuna/omnipos-cafeteria-service/internal/user/dto"
	userRepoPkg "github.com/fekuna/omnipos-cafeteria-service/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-cafeteria-service/internal/user/usecase"
)

const usage = `usage: cafeteria <command> [flags] [args]

commands:
  report <revenue|popular|by-date>
  menu [-sort name|price-asc|price-desc] [-search text] [-category id]
  sort-menu <name|price-asc|price-desc>
  export-menu <file>
  import-menu <file>
  orders [-date YYYY-MM-DD] [-user id-or-name]
  export-orders [-date YYYY-MM-DD] [-user id-or-name] <file>
  register <username> <password>
  order <username> <password> <mealID[xQTY]>...
  serve-metrics    serve this process's counters and Go runtime metrics
`

type app struct {
	categories category.UseCase
	meals      meal.UseCase
	users      user.UseCase
	orders     order.UseCase
	reports    report.UseCase
	menu       menu.UseCase
	registry   *prometheus.Registry
	cfg        *config.Config
	logger     logger.ZapLogger
}

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := build(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Could not open data store", zap.Error(err))
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		appLogger.Error("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		appLogger.Sync()
		os.Exit(1)
	}
}

func build(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (*app, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	mode, err := cfg.Store.Mode()
	if err != nil {
		return nil, err
	}
	startingBalance, err := cfg.Seed.Balance()
	if err != nil {
		return nil, err
	}

	// 3. Open the data store. Importing model switches decimal to bare JSON
	// numbers for this whole process.
	db, err := store.Open(ctx, &store.Config{
		Path:          cfg.Store.DataFile,
		FileMode:      mode,
		AdminUsername: cfg.Seed.AdminUsername,
		AdminPassword: cfg.Seed.AdminPassword,
	}, log, m)
	if err != nil {
		return nil, err
	}
	log.Info("Opened data store", zap.String("data_file", db.Path()))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewFileRepository(db)
	mealRepo := mealRepoPkg.NewFileRepository(db)
	userRepo := userRepoPkg.NewFileRepository(db)
	orderRepo := orderRepoPkg.NewFileRepository(db)
	menuRepo := menuRepoPkg.NewFileRepository(db)

	// 5. Initialize UseCases
	return &app{
		categories: catUCPkg.NewCategoryUseCase(catRepo, log),
		meals:      mealUCPkg.NewMealUseCase(mealRepo, log),
		users:      userUCPkg.NewUserUseCase(userRepo, startingBalance, log),
		orders:     orderUCPkg.NewOrderUseCase(orderRepo, userRepo, mealRepo, catRepo, m, log),
		reports:    reportUCPkg.NewReportUseCase(orderRepo, mealRepo, userRepo, log),
		menu:       menuUCPkg.NewMenuUseCase(menuRepo, m, log),
		registry:   registry,
		cfg:        cfg,
		logger:     log,
	}, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "report":
		return a.report(ctx, args)
	case "menu":
		return a.listMenu(ctx, args)
	case "sort-menu":
		if len(args) != 1 {
			return errors.New("sort-menu needs a sort order")
		}
		return a.listMenu(ctx, []string{"-sort", args[0]})
	case "export-menu":
		return a.exportMenu(ctx, args)
	case "import-menu":
		return a.importMenu(ctx, args)
	case "orders":
		return a.listOrders(ctx, args)
	case "export-orders":
		return a.exportOrders(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "order":
		return a.placeOrder(ctx, args)
	case "serve-metrics":
		return a.serveMetrics(ctx)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

func (a *app) report(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("report needs one of revenue, popular, by-date")
	}
	k, err := report.ParseKind(args[0])
	if err != nil {
		return err
	}
	out, err := a.reports.Generate(ctx, k)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func (a *app) listMenu(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("menu", flag.ContinueOnError)
	sortBy := fs.String("sort", "", "name, price-asc or price-desc")
	search := fs.String("search", "", "case-insensitive name filter")
	categoryID := fs.Int("category", 0, "category id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	meals, err := a.meals.ListMeals(ctx, &mealDto.MealFilters{
		CategoryID:  *categoryID,
		SearchQuery: *search,
		SortBy:      *sortBy,
	})
	if err != nil {
		return err
	}
	for _, m := range meals {
		fmt.Printf("%4d  %-30s %10s  %s\n", m.ID, m.Name, model.FormatMoney(m.Price), a.categories.CategoryName(ctx, m.CategoryID))
	}
	return nil
}

func (a *app) exportMenu(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("export-menu needs a file")
	}
	doc, err := a.menu.Export(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("exported %d categories and %d meals to %s\n", len(doc.Categories), len(doc.Meals), args[0])
	return nil
}

func (a *app) importMenu(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("import-menu needs a file")
	}
	res, err := a.menu.Import(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("categories: %d added, %d skipped; meals: %d added, %d updated\n",
		res.CategoriesAdded, res.CategoriesSkipped, res.MealsAdded, res.MealsUpdated)
	return nil
}

func parseOrderFilters(name string, args []string) (*orderDto.OrderFilters, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	date := fs.String("date", "", "order date, YYYY-MM-DD")
	userQuery := fs.String("user", "", "user id or part of a username")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f := &orderDto.OrderFilters{User: *userQuery}
	if *date != "" {
		d, err := model.ParseDate(*date)
		if err != nil {
			return nil, nil, err
		}
		f.Date = d
	}
	return f, fs.Args(), nil
}

func (a *app) listOrders(ctx context.Context, args []string) error {
	filters, _, err := parseOrderFilters("orders", args)
	if err != nil {
		return err
	}
	orders, err := a.orders.FilterOrders(ctx, filters)
	if err != nil {
		return err
	}
	for i := range orders {
		o := &orders[i]
		summary, err := a.orders.LineItemSummary(ctx, o)
		if err != nil {
			return err
		}
		fmt.Printf("%4d  %s  user %-4d %10s  %s\n", o.ID, o.Date.Display(), o.UserID, model.FormatMoney(o.TotalPrice), summary)
	}
	return nil
}

func (a *app) exportOrders(ctx context.Context, args []string) error {
	filters, rest, err := parseOrderFilters("export-orders", args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return errors.New("export-orders needs a file")
	}
	n, err := a.orders.ExportOrders(ctx, &orderDto.ExportOrdersInput{Path: rest[0], Filters: *filters})
	if err != nil {
		return err
	}
	fmt.Printf("exported %d orders to %s\n", n, rest[0])
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("register needs a username and a password")
	}
	u, err := a.users.Register(ctx, &userDto.RegisterInput{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (id %d), balance %s\n", u.Username, u.ID, model.FormatMoney(u.Balance))
	return nil
}

func (a *app) placeOrder(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("order needs a username, a password and at least one meal")
	}
	u, err := a.users.Login(ctx, &userDto.LoginInput{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	student, err := session.NewStudent(u, a.orders, a.logger)
	if err != nil {
		return err
	}

	for _, item := range args[2:] {
		mealID, qty, err := parseCartItem(item)
		if err != nil {
			return err
		}
		for i := 0; i < qty; i++ {
			if err := student.AddToCart(mealID); err != nil {
				return err
			}
		}
	}

	o, err := student.PlaceOrder(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("order %d placed, total %s, balance %s\n", o.ID, model.FormatMoney(o.TotalPrice), model.FormatMoney(student.Balance()))
	return nil
}

// parseCartItem reads "7" or "7x2".
func parseCartItem(s string) (mealID, qty int, err error) {
	idPart, qtyPart, found := strings.Cut(s, "x")
	mealID, err = strconv.Atoi(idPart)
	if err != nil {
		return 0, 0, fmt.Errorf("bad meal %q", s)
	}
	qty = 1
	if found {
		qty, err = strconv.Atoi(qtyPart)
		if err != nil || qty < 1 {
			return 0, 0, fmt.Errorf("bad quantity in %q", s)
		}
	}
	return mealID, qty, nil
}

// serveMetrics exposes the registry until ctx is done. Order and import
// counters are per process, so they only move when the same process also
// places orders, as an embedding service does.
func (a *app) serveMetrics(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           metricsMux(a.registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting metrics server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down metrics server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.logger.Info("Metrics server stopped")
	return nil
}

func metricsMux(g prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(g))
	return mux
}
