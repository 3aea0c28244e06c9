package service

import (
	"strconv"

	apperrors "github.com/ssgeek/commerce/pkg/errors"
)

func validationError(field, msg string) error {
	return &apperrors.ErrValidation{Field: field, Message: msg}
}

func notFound(resource string, id int) error {
	return &apperrors.ErrNotFound{Resource: resource, ID: strconv.Itoa(id)}
}
