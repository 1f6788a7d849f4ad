package service

import (
	"errors"

	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/internal/validation"

	"gorm.io/gorm"
)

const categorySlugMaxLength = 50

type CategoryService interface {
	Create(name, slug string) (*models.Category, error)
	List(search string, page, pageSize int) ([]models.Category, int64, error)
	Delete(slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(name, slug string) (*models.Category, error) {
	slug, err := normalizeSlug(name, slug, categorySlugMaxLength)
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewFieldError("slug", "a category with this name or slug already exists")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.categoryRepo.List(search, page, pageSize)
}

func (s *categoryService) Delete(slug string) error {
	err := s.categoryRepo.DeleteBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoryNotFound
	}
	if errors.Is(err, repository.ErrProtected) {
		return ErrProtected
	}
	return err
}

// normalizeSlug validates a caller-supplied slug or derives one from
// the name when the slug is empty.
func normalizeSlug(name, slug string, max int) (string, error) {
	if slug == "" {
		slug = validation.MakeSlug(name)
		if len(slug) > max {
			slug = slug[:max]
		}
		return slug, nil
	}
	if err := validation.Slug(slug, max); err != nil {
		return "", NewFieldError("slug", err.Error())
	}
	return slug, nil
}
