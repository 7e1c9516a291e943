package users

import (
	"fmt"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	custom_error "github.com/BekaChkhiro/dealer-app-sub000/pkg/errors"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository struct {
	repository *repository.Repository
}

func NewUserRepository(r *repository.Repository) *UserRepository {
	return &UserRepository{repository: r}
}

func (r *UserRepository) List(p listing.Params) ([]models.User, int, error) {
	base := r.repository.GoquDBWrapper.From("users")

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count users: %w", err)
	}

	var rows []models.User
	if err := p.Apply(base).Executor().ScanStructs(&rows); err != nil {
		return nil, 0, fmt.Errorf("unable to list users: %w", err)
	}

	return rows, int(total), nil
}

func (r *UserRepository) Get(id int) (*models.User, error) {
	var user models.User

	query := r.repository.GoquDBWrapper.From("users").Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("unable to get user: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

func (r *UserRepository) Create(req models.CreateUserRequest) (*models.User, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	row := goqu.Record{
		"username":      req.Username,
		"password_hash": hash,
		"fullname":      req.Fullname,
		"role":          req.Role,
	}

	query := r.repository.GoquDBWrapper.Insert("users").Rows(row).Returning("id")

	var id int
	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to insert user: %w", err))
	}

	return r.Get(id)
}

func (r *UserRepository) Update(id int, changes models.UserChanges) (*models.User, error) {
	row := goqu.Record{}
	if changes.PasswordHash != nil {
		row["password_hash"] = *changes.PasswordHash
	}
	if changes.Fullname != nil {
		row["fullname"] = *changes.Fullname
	}
	if changes.Role != nil {
		row["role"] = *changes.Role
	}

	query := r.repository.GoquDBWrapper.Update("users").Set(row).Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to update user: %w", err))
	}

	return r.Get(id)
}

func (r *UserRepository) Delete(id int) error {
	query := r.repository.GoquDBWrapper.Delete("users").Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return custom_error.Classify(fmt.Errorf("failed to delete user: %w", err))
	}

	return nil
}

func (r *UserRepository) DeleteMany(ids []int) ([]int, error) {
	query := r.repository.GoquDBWrapper.Delete("users").
		Where(goqu.Ex{"id": ids}).
		Returning("id")

	var deleted []int
	if err := query.Executor().ScanVals(&deleted); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to bulk delete users: %w", err))
	}

	return deleted, nil
}

// HashPassword exposes the repository's hashing scheme to the handler
// layer for PATCH password changes.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(hash), err
}
