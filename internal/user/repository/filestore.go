package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/credential"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
)

type FileRepository struct {
	DB *store.Store
}

func NewFileRepository(db *store.Store) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) NextID(ctx context.Context) int {
	return r.DB.NextID(store.KindUser)
}

func (r *FileRepository) Create(ctx context.Context, u *model.User) error {
	return r.DB.Update(ctx, func(d *store.Data) error {
		for _, existing := range d.Users {
			if existing.Username == u.Username {
				return fmt.Errorf("%w: username %q is taken", apperror.ErrConflict, u.Username)
			}
		}
		if d.UserIndex(u.ID) >= 0 {
			return fmt.Errorf("%w: user %d already exists", apperror.ErrConflict, u.ID)
		}
		d.Users = append(d.Users, *u)
		d.Reserve(store.KindUser, u.ID)
		return nil
	})
}

func (r *FileRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *FileRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

// FindByCredentials matches the username exactly and verifies the password
// against the stored hash.
func (r *FileRepository) FindByCredentials(ctx context.Context, username, password string) (*model.User, error) {
	return r.find(func(u *model.User) bool {
		return u.Username == username && credential.Verify(password, u.PasswordHash)
	})
}

func (r *FileRepository) find(match func(*model.User) bool) (*model.User, error) {
	var out *model.User
	err := r.DB.View(func(d *store.Data) error {
		for i := range d.Users {
			if match(&d.Users[i]) {
				u := d.Users[i]
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *FileRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := r.DB.View(func(d *store.Data) error {
		out = append([]model.User{}, d.Users...)
		return nil
	})
	return out, err
}

// UpdateFunc applies fn to a copy of the user with id and stores the result,
// all inside one store mutation. It returns (nil, nil) when id is unknown.
func (r *FileRepository) UpdateFunc(ctx context.Context, id int, fn func(*model.User) error) (*model.User, error) {
	var out *model.User
	err := r.DB.Update(ctx, func(d *store.Data) error {
		i := d.UserIndex(id)
		if i < 0 {
			return nil
		}
		u := d.Users[i]
		if err := fn(&u); err != nil {
			return err
		}
		u.ID = id
		d.Users[i] = u
		out = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
