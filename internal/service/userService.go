package service

import (
	"errors"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/internal/validation"

	"gorm.io/gorm"
)

type UserService interface {
	Create(req *dto.CreateUserDTO) (*models.User, error)
	Update(username string, req *dto.UpdateUserDTO) (*models.User, error)
	UpdateMe(userID string, req *dto.UpdateMeDTO) (*models.User, error)
	Delete(username string) error
	Get(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	List(search string, page, pageSize int) ([]models.User, int64, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(req *dto.CreateUserDTO) (*models.User, error) {
	if err := validation.Username(req.Username); err != nil {
		return nil, NewFieldError("username", err.Error())
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleUser
	} else if !role.Valid() {
		return nil, NewFieldError("role", "must be one of: user, moderator, admin")
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewFieldError("username", "a user with this username or email already exists")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(username string, req *dto.UpdateUserDTO) (*models.User, error) {
	user, err := s.Get(username)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		if !role.Valid() {
			return nil, NewFieldError("role", "must be one of: user, moderator, admin")
		}
		user.Role = role
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewFieldError("email", "a user with this email already exists")
		}
		return nil, err
	}
	return user, nil
}

// UpdateMe lets users edit their own profile. Username, email and role
// never change through this path.
func (s *userService) UpdateMe(userID string, req *dto.UpdateMeDTO) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(username string) error {
	err := s.userRepo.Delete(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *userService) Get(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(search string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(search, page, pageSize)
}
