package services

import (
	"context"
	"fmt"

	"github.com/ecemunal/taskora/models"
	"github.com/ecemunal/taskora/pkg"
	"github.com/ecemunal/taskora/repository"
)

// UserService, kullanıcı profili CRUD'u.
//
// callerID her operasyonda doğrulanmış token'dan gelir. Bir kullanıcı
// sadece KENDİ kaydını görebilir ve değiştirebilir — id != callerID olan
// her istek ErrForbidden ile döner (kayıt var mı yok mu bakılmaksızın;
// yabancı id'nin varlığı response'tan anlaşılamaz).
type UserService interface {
	// Create, oturum açmadan kullanıcı oluşturur (register'dan farkı budur).
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	// List, sadece caller'ın kendi kaydını içeren tek elemanlı liste döner.
	List(ctx context.Context, callerID string) ([]models.User, error)
	Get(ctx context.Context, callerID, userID string) (*models.User, error)
	Update(ctx context.Context, callerID, userID string, req *models.UpdateUserRequest) (*models.User, error)
	// Delete, kullanıcıyı siler. Oturumlar ve görevler FK cascade ile gider.
	Delete(ctx context.Context, callerID, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService, constructor.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) List(ctx context.Context, callerID string) ([]models.User, error) {
	user, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return []models.User{*user}, nil
}

func (s *userService) Get(ctx context.Context, callerID, userID string) (*models.User, error) {
	// Forbidden kontrolü lookup'tan ÖNCE — yabancı id için 404/403 ayrımı
	// yapılmaz, hep 403 döner.
	if userID != callerID {
		return nil, fmt.Errorf("%w: cannot access another user's record", pkg.ErrForbidden)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Update(ctx context.Context, callerID, userID string, req *models.UpdateUserRequest) (*models.User, error) {
	if userID != callerID {
		return nil, fmt.Errorf("%w: cannot modify another user's record", pkg.ErrForbidden)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err // email çakışması → ErrAlreadyExists
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Delete(ctx context.Context, callerID, userID string) error {
	if userID != callerID {
		return fmt.Errorf("%w: cannot delete another user's record", pkg.ErrForbidden)
	}

	return s.userRepo.Delete(ctx, userID)
}
