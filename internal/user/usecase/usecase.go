package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/credential"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/user"
	"github.com/fekuna/omnipos-cafeteria-service/internal/user/dto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type userUseCase struct {
	repo            user.Repository
	startingBalance decimal.Decimal
	logger          logger.ZapLogger
}

// NewUserUseCase returns the account use case. Students created through
// Register start with startingBalance.
func NewUserUseCase(repo user.Repository, startingBalance decimal.Decimal, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:            repo,
		startingBalance: startingBalance,
		logger:          log,
	}
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperror.ErrInvalidInput)
	}

	u, err := uc.repo.FindByCredentials(ctx, username, input.Password)
	if err != nil {
		return nil, err
	}
	if u == nil {
		uc.logger.Warn("Login failed", zap.String("username", username))
		return nil, fmt.Errorf("%w: invalid username or password", apperror.ErrNotFound)
	}

	uc.logger.Info("User logged in", zap.Int("user_id", u.ID), zap.Stringer("role", u.Role))
	return u, nil
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperror.ErrInvalidInput)
	}

	u := &model.User{
		ID:           uc.repo.NextID(ctx),
		Username:     username,
		PasswordHash: credential.Hash(input.Password),
		Role:         model.RoleStudent,
		Balance:      uc.startingBalance,
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		uc.logger.Error("failed to register user", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Student registered", zap.Int("user_id", u.ID), zap.String("username", username))
	return u, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id int) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", apperror.ErrNotFound, id)
	}
	return u, nil
}

func (uc *userUseCase) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %q", apperror.ErrNotFound, username)
	}
	return u, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context) ([]model.User, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *userUseCase) UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error) {
	var hash string
	if input.Password != nil {
		if *input.Password == "" {
			return nil, fmt.Errorf("%w: password is required", apperror.ErrInvalidInput)
		}
		hash = credential.Hash(*input.Password)
	}
	if input.Balance != nil && input.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance must be >= 0", apperror.ErrInvalidInput)
	}

	u, err := uc.repo.UpdateFunc(ctx, input.ID, func(u *model.User) error {
		if input.Password != nil {
			u.PasswordHash = hash
		}
		if input.Balance != nil {
			u.Balance = *input.Balance
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to update user", zap.Int("user_id", input.ID), zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", apperror.ErrNotFound, input.ID)
	}
	return u, nil
}
