package models

import (
	"errors"
	"fmt"
)

// Error codes surfaced to the presentation layer.
const (
	CodePostNotFound     = "POST_NOT_FOUND"
	CodePostNotUpdatable = "POST_NOT_UPDATABLE"
	CodePostNotDeletable = "POST_NOT_DELETABLE"
	CodeCommentNotFound  = "COMMENT_NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeInternal         = "INTERNAL_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code, so errors.Is(err, ErrPostNotFound)
// holds for every post-not-found error regardless of message.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrPostNotFound     = &AppError{Code: CodePostNotFound, Message: "post not found"}
	ErrPostNotUpdatable = &AppError{Code: CodePostNotUpdatable, Message: "post is not updatable"}
	ErrPostNotDeletable = &AppError{Code: CodePostNotDeletable, Message: "post is not deletable"}
	ErrCommentNotFound  = &AppError{Code: CodeCommentNotFound, Message: "comment not found"}
)

// NewPostNotFoundError reports a missing post.
func NewPostNotFoundError(id uint) *AppError {
	return &AppError{
		Code:    CodePostNotFound,
		Message: fmt.Sprintf("post with ID %d not found", id),
	}
}

// NewPostNotUpdatableError reports an update attempted by someone other than the author.
func NewPostNotUpdatableError(id uint) *AppError {
	return &AppError{
		Code:    CodePostNotUpdatable,
		Message: fmt.Sprintf("post with ID %d can only be updated by its author", id),
	}
}

// NewPostNotDeletableError reports a delete attempted by someone other than the author.
func NewPostNotDeletableError(id uint) *AppError {
	return &AppError{
		Code:    CodePostNotDeletable,
		Message: fmt.Sprintf("post with ID %d can only be deleted by its author", id),
	}
}

func NewCommentNotFoundError(id uint) *AppError {
	return &AppError{
		Code:    CodeCommentNotFound,
		Message: fmt.Sprintf("comment with ID %d not found", id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// ErrorKind returns the AppError code carried by err, or CodeInternal for any
// other non-nil error.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
