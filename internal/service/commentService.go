package service

import (
	"errors"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(actor *models.User, titleID, reviewID int64, req *dto.CreateCommentDTO) (*models.Comment, error)
	Update(actor *models.User, titleID, reviewID, commentID int64, req *dto.UpdateCommentDTO) (*models.Comment, error)
	Delete(actor *models.User, titleID, reviewID, commentID int64) error
	Get(titleID, reviewID, commentID int64) (*models.Comment, error)
	ListByReview(titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
	}
}

// resolveReview walks the nested path: the title must exist and the
// review must belong to it, otherwise the resource is not found.
func (s *commentService) resolveReview(titleID, reviewID int64) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *commentService) Create(actor *models.User, titleID, reviewID int64, req *dto.CreateCommentDTO) (*models.Comment, error) {
	review, err := s.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: review.ID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(review.ID, comment.ID)
}

func (s *commentService) Update(actor *models.User, titleID, reviewID, commentID int64, req *dto.UpdateCommentDTO) (*models.Comment, error) {
	comment, err := s.Get(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !canModify(actor, comment.AuthorID) {
		return nil, ErrPermissionDenied
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(actor *models.User, titleID, reviewID, commentID int64) error {
	comment, err := s.Get(titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !canModify(actor, comment.AuthorID) {
		return ErrPermissionDenied
	}

	return s.commentRepo.Delete(comment)
}

func (s *commentService) Get(titleID, reviewID, commentID int64) (*models.Comment, error) {
	review, err := s.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(review.ID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListByReview(titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	review, err := s.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(review.ID, page, pageSize)
}
