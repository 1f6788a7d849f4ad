package service

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")

	// ErrPermissionDenied: the actor is neither the object's author nor
	// a moderator nor an admin.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDuplicateReview: a user may leave only one review per title.
	ErrDuplicateReview = errors.New("you have already reviewed this title")

	// ErrProtected: the row is still referenced (category with titles,
	// title with reviews).
	ErrProtected = errors.New("cannot delete: still referenced by other resources")
)

// FieldError is a validation failure attributable to a single request
// field. Handlers render it as a field-keyed 400 payload.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// NewFieldError builds a FieldError for the given field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// AsFieldError unwraps err into a FieldError if it is one.
func AsFieldError(err error) (*FieldError, bool) {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr, true
	}
	return nil, false
}
