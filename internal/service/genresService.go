package service

import (
	"errors"

	"reviewhub/internal/models"
	"reviewhub/internal/repository"

	"gorm.io/gorm"
)

const genreSlugMaxLength = 25

type GenreService interface {
	Create(name, slug string) (*models.Genre, error)
	List(search string, page, pageSize int) ([]models.Genre, int64, error)
	Delete(slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) Create(name, slug string) (*models.Genre, error) {
	slug, err := normalizeSlug(name, slug, genreSlugMaxLength)
	if err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: name, Slug: slug}
	if err := s.genreRepo.Create(genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewFieldError("slug", "a genre with this name or slug already exists")
		}
		return nil, err
	}
	return genre, nil
}

func (s *genreService) List(search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.genreRepo.List(search, page, pageSize)
}

func (s *genreService) Delete(slug string) error {
	err := s.genreRepo.DeleteBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrGenreNotFound
	}
	return err
}
