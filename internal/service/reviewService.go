package service

import (
	"errors"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	Create(actor *models.User, titleID int64, req *dto.CreateReviewDTO) (*models.Review, error)
	Update(actor *models.User, titleID, reviewID int64, req *dto.UpdateReviewDTO) (*models.Review, error)
	Delete(actor *models.User, titleID, reviewID int64) error
	Get(titleID, reviewID int64) (*models.Review, error)
	ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

// Create stamps the author from the session and enforces the
// one-review-per-author-per-title rule.
func (s *reviewService) Create(actor *models.User, titleID int64, req *dto.CreateReviewDTO) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if _, err := s.reviewRepo.GetByTitleAndAuthor(titleID, actor.ID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Concurrent create by the same author.
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	return s.reviewRepo.GetByID(titleID, review.ID)
}

func (s *reviewService) Update(actor *models.User, titleID, reviewID int64, req *dto.UpdateReviewDTO) (*models.Review, error) {
	review, err := s.Get(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !canModify(actor, review.AuthorID) {
		return nil, ErrPermissionDenied
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes the review; its comments cascade away with it.
func (s *reviewService) Delete(actor *models.User, titleID, reviewID int64) error {
	review, err := s.Get(titleID, reviewID)
	if err != nil {
		return err
	}

	if !canModify(actor, review.AuthorID) {
		return ErrPermissionDenied
	}

	return s.reviewRepo.Delete(review)
}

func (s *reviewService) Get(titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrTitleNotFound
		}
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(titleID, page, pageSize)
}

// canModify implements the object-level rule: the author, a moderator
// or an admin may mutate a review or comment.
func canModify(actor *models.User, authorID string) bool {
	return actor.ID == authorID || actor.IsModerator() || actor.IsAdmin()
}
