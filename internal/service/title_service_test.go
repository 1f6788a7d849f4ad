package service

import (
	"testing"
	"time"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTitleServiceCreate(t *testing.T) {
	category := &models.Category{ID: 1, Name: "Books", Slug: "books"}
	genres := []models.Genre{{ID: 1, Name: "Drama", Slug: "drama"}}

	t.Run("ResolvesSlugsAndReloads", func(t *testing.T) {
		titleRepo := new(MockTitleRepository)
		categoryRepo := new(MockCategoryRepository)
		genreRepo := new(MockGenreRepository)
		svc := NewTitleService(titleRepo, categoryRepo, genreRepo)

		categoryRepo.On("FindBySlug", "books").Return(category, nil)
		genreRepo.On("FindBySlugs", []string{"drama"}).Return(genres, nil)
		titleRepo.On("Create", mock.AnythingOfType("*models.Title")).Run(func(args mock.Arguments) {
			args.Get(0).(*models.Title).ID = 7
		}).Return(nil)
		rating := 8.5
		titleRepo.On("GetByID", int64(7)).Return(&models.Title{
			ID:       7,
			Name:     "Dune",
			Year:     1965,
			Category: *category,
			Genres:   genres,
			Rating:   &rating,
		}, nil)

		title, err := svc.Create(&dto.CreateTitleDTO{
			Name:     "Dune",
			Year:     1965,
			Category: "books",
			Genre:    []string{"drama"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), title.ID)
		require.NotNil(t, title.Rating)
		assert.Equal(t, 8.5, *title.Rating)
	})

	t.Run("RejectsFutureYear", func(t *testing.T) {
		titleRepo := new(MockTitleRepository)
		categoryRepo := new(MockCategoryRepository)
		genreRepo := new(MockGenreRepository)
		svc := NewTitleService(titleRepo, categoryRepo, genreRepo)

		_, err := svc.Create(&dto.CreateTitleDTO{
			Name:     "From the Future",
			Year:     time.Now().Year() + 1,
			Category: "books",
		})
		fieldErr, ok := AsFieldError(err)
		require.True(t, ok)
		assert.Equal(t, "year", fieldErr.Field)
		categoryRepo.AssertNotCalled(t, "FindBySlug", mock.Anything)
	})

	t.Run("RejectsUnknownCategory", func(t *testing.T) {
		titleRepo := new(MockTitleRepository)
		categoryRepo := new(MockCategoryRepository)
		genreRepo := new(MockGenreRepository)
		svc := NewTitleService(titleRepo, categoryRepo, genreRepo)

		categoryRepo.On("FindBySlug", "nope").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create(&dto.CreateTitleDTO{Name: "Dune", Year: 1965, Category: "nope"})
		fieldErr, ok := AsFieldError(err)
		require.True(t, ok)
		assert.Equal(t, "category", fieldErr.Field)
		assert.Contains(t, fieldErr.Message, "nope")
	})

	t.Run("RejectsUnknownGenre", func(t *testing.T) {
		titleRepo := new(MockTitleRepository)
		categoryRepo := new(MockCategoryRepository)
		genreRepo := new(MockGenreRepository)
		svc := NewTitleService(titleRepo, categoryRepo, genreRepo)

		categoryRepo.On("FindBySlug", "books").Return(category, nil)
		genreRepo.On("FindBySlugs", []string{"drama", "nope"}).Return(genres, nil)

		_, err := svc.Create(&dto.CreateTitleDTO{
			Name:     "Dune",
			Year:     1965,
			Category: "books",
			Genre:    []string{"drama", "nope"},
		})
		fieldErr, ok := AsFieldError(err)
		require.True(t, ok)
		assert.Equal(t, "genre", fieldErr.Field)
		assert.Contains(t, fieldErr.Message, "nope")
	})
}

func TestTitleServiceUpdate(t *testing.T) {
	category := &models.Category{ID: 1, Name: "Books", Slug: "books"}

	t.Run("UnknownTitle", func(t *testing.T) {
		titleRepo := new(MockTitleRepository)
		categoryRepo := new(MockCategoryRepository)
		genreRepo := new(MockGenreRepository)
		svc := NewTitleService(titleRepo, categoryRepo, genreRepo)

		titleRepo.On("GetByID", int64(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Update(404, &dto.UpdateTitleDTO{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrTitleNotFound)
	})

	t.Run("ReplacesGenresOnlyWhenSent", func(t *testing.T) {
		titleRepo := new(MockTitleRepository)
		categoryRepo := new(MockCategoryRepository)
		genreRepo := new(MockGenreRepository)
		svc := NewTitleService(titleRepo, categoryRepo, genreRepo)

		existing := &models.Title{ID: 7, Name: "Dune", Year: 1965, CategoryID: 1, Category: *category}
		titleRepo.On("GetByID", int64(7)).Return(existing, nil)
		titleRepo.On("Update", mock.AnythingOfType("*models.Title")).Return(nil)

		_, err := svc.Update(7, &dto.UpdateTitleDTO{Name: strPtr("Dune Messiah")})
		require.NoError(t, err)
		titleRepo.AssertNotCalled(t, "ReplaceGenres", mock.Anything, mock.Anything)
	})
}

func TestTitleServiceDelete(t *testing.T) {
	t.Run("UnknownTitle", func(t *testing.T) {
		titleRepo := new(MockTitleRepository)
		svc := NewTitleService(titleRepo, new(MockCategoryRepository), new(MockGenreRepository))

		titleRepo.On("Delete", int64(404)).Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete(404), ErrTitleNotFound)
	})
}
