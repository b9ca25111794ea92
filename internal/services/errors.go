// internal/services/errors.go
package services

import (
	"github.com/shopyangu/backend/internal/apperrors"
	"github.com/shopyangu/backend/internal/utils"
)

// invalidInput converts validator field errors into the InvalidInput kind,
// keeping the per-field breakdown in the error details.
func invalidInput(err error) *apperrors.Error {
	appErr := apperrors.New(apperrors.InvalidInput, utils.ValidationMessage(err))
	if fieldErrors := utils.GetValidationErrors(err); len(fieldErrors) > 0 {
		appErr.Details = map[string]interface{}{"errors": fieldErrors}
	}
	return appErr
}

func storeError(message string, err error) *apperrors.Error {
	return apperrors.Wrap(apperrors.ServiceUnavailable, message, err)
}
