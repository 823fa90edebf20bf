package usecase

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/meal"
	"github.com/fekuna/omnipos-cafeteria-service/internal/order"
	"github.com/fekuna/omnipos-cafeteria-service/internal/report"
	"github.com/fekuna/omnipos-cafeteria-service/internal/user"
	"go.uber.org/zap"
)

type reportUseCase struct {
	orders order.Repository
	meals  meal.Repository
	users  user.Repository
	logger logger.ZapLogger
}

func NewReportUseCase(orders order.Repository, meals meal.Repository, users user.Repository, log logger.ZapLogger) report.UseCase {
	return &reportUseCase{
		orders: orders,
		meals:  meals,
		users:  users,
		logger: log,
	}
}

func (uc *reportUseCase) Generate(ctx context.Context, k report.Kind) (string, error) {
	mgr := report.NewManager()
	if err := mgr.SetStrategy(k); err != nil {
		return "", err
	}

	in, err := uc.snapshot(ctx)
	if err != nil {
		uc.logger.Error("failed to load report data", zap.Stringer("report", k), zap.Error(err))
		return "", err
	}

	out, err := mgr.Generate(in)
	if err != nil {
		return "", err
	}
	uc.logger.Debug("Report generated", zap.Stringer("report", k), zap.Int("orders", len(in.Orders)))
	return out, nil
}

func (uc *reportUseCase) snapshot(ctx context.Context) (report.Input, error) {
	orders, err := uc.orders.FindAll(ctx)
	if err != nil {
		return report.Input{}, err
	}
	meals, err := uc.meals.FindAll(ctx)
	if err != nil {
		return report.Input{}, err
	}
	users, err := uc.users.FindAll(ctx)
	if err != nil {
		return report.Input{}, err
	}
	return report.Input{Orders: orders, Meals: meals, Users: users}, nil
}
