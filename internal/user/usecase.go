package user

import (
	"context"

	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/user/dto"
)

type UseCase interface {
	Login(ctx context.Context, input *dto.LoginInput) (*model.User, error)
	Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error)
	GetUser(ctx context.Context, id int) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error)
}
