package service

import (
	"errors"
	"fmt"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/internal/validation"

	"gorm.io/gorm"
)

type TitleService interface {
	Create(req *dto.CreateTitleDTO) (*models.Title, error)
	Update(id int64, req *dto.UpdateTitleDTO) (*models.Title, error)
	Delete(id int64) error
	Get(id int64) (*models.Title, error)
	List(filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) Create(req *dto.CreateTitleDTO) (*models.Title, error) {
	if err := validation.Year(req.Year); err != nil {
		return nil, NewFieldError("year", err.Error())
	}

	category, err := s.resolveCategory(req.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  category.ID,
		Genres:      genres,
	}
	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}

	// Reload for the nested read representation (category, genres,
	// rating annotation).
	return s.Get(title.ID)
}

func (s *titleService) Update(id int64, req *dto.UpdateTitleDTO) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validation.Year(*req.Year); err != nil {
			return nil, NewFieldError("year", err.Error())
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = category.ID
	}

	if err := s.titleRepo.Update(title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(*req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(title, genres); err != nil {
			return nil, err
		}
	}

	return s.Get(id)
}

func (s *titleService) Delete(id int64) error {
	err := s.titleRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTitleNotFound
	}
	if errors.Is(err, repository.ErrProtected) {
		return ErrProtected
	}
	return err
}

func (s *titleService) Get(id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return title, nil
}

func (s *titleService) List(filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	return s.titleRepo.List(filter, page, pageSize)
}

func (s *titleService) resolveCategory(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewFieldError("category", fmt.Sprintf("unknown category slug %q", slug))
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		found := make(map[string]bool, len(genres))
		for _, genre := range genres {
			found[genre.Slug] = true
		}
		for _, slug := range slugs {
			if !found[slug] {
				return nil, NewFieldError("genre", fmt.Sprintf("unknown genre slug %q", slug))
			}
		}
	}
	return genres, nil
}
