package users

import (
	"fmt"

	"github.com/AngelRL115/SEHC/internal/repository"
	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type UserRepository interface {
	GetUser(id int) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUsers() ([]models.User, error)
	PersistUser(req models.CreateUserRequest) (*models.User, error)
}

type userRepository struct {
	repo *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepository{repo: r}
}

func (r *userRepository) GetUser(id int) (*models.User, error) {
	return r.fetchUserByCondition(goqu.Ex{"id": id})
}

func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	return r.fetchUserByCondition(goqu.Ex{"username": username})
}

func (r *userRepository) fetchUserByCondition(condition goqu.Ex) (*models.User, error) {
	var user models.User

	query := r.repo.GoquDBWrapper.
		Select("id", "username", "name", "last_name").
		From("users").
		Where(condition)

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("unable to select user from database: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	return &user, nil
}

func (r *userRepository) GetUsers() ([]models.User, error) {
	var users []models.User

	query := r.repo.GoquDBWrapper.
		Select("id", "username", "name", "last_name").
		From("users").
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("unable to select users from database: %w", err)
	}

	return users, nil
}

func (r *userRepository) PersistUser(req models.CreateUserRequest) (*models.User, error) {
	query := r.repo.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"username":  req.Username,
			"name":      req.Name,
			"last_name": req.LastName,
		}).
		Returning("id")

	user := models.User{
		Username: req.Username,
		Name:     req.Name,
		LastName: req.LastName,
	}

	if _, err := query.Executor().ScanVal(&user.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Username already taken", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert user record: %w", err)
	}

	return &user, nil
}
