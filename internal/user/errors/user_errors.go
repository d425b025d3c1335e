package usererrors

import (
	"net/http"

	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)

	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"Leave balance is not sufficient",
		http.StatusConflict,
	)
)
