package services

import (
	"errors"
	"fmt"

	apierrors "github.com/openedu/conductor-api/internal/errors"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound           = apierrors.New(apierrors.KindNotFound, "Couldn't find a user with that identifier.")
	ErrAdminTaskNotFound      = apierrors.New(apierrors.KindNotFound, "Couldn't find an admin task with that identifier.")
	ErrProjectNotFound        = apierrors.New(apierrors.KindNotFound, "Couldn't find a project with that identifier.")
	ErrProgressUpdateNotFound = apierrors.New(apierrors.KindNotFound, "Couldn't find a progress update with that identifier.")
	ErrAssigneeNotFound       = apierrors.New(apierrors.KindNotFound, "Couldn't find the user to assign.")

	ErrTitleRequired      = apierrors.New(apierrors.KindValidation, "A title is required.")
	ErrMessageRequired    = apierrors.New(apierrors.KindValidation, "A progress message is required.")
	ErrInvalidProgress    = apierrors.New(apierrors.KindValidation, "Progress must be a whole number between 0 and 100.")
	ErrInvalidTaskStatus  = apierrors.New(apierrors.KindValidation, "Invalid admin task status.")
	ErrInvalidDate        = apierrors.New(apierrors.KindValidation, "Dates must be in MM-DD-YYYY format.")
	ErrInvalidDateRange   = apierrors.New(apierrors.KindValidation, "The start date must not be after the end date.")
	ErrAdminTaskIDMissing = apierrors.New(apierrors.KindValidation, "An admin task identifier is required.")

	ErrProjectNotAtFullProgress = apierrors.New(apierrors.KindPrecondition, "Project must be at 100% progress to be marked as completed.")
	ErrProjectAlreadyCompleted  = apierrors.New(apierrors.KindPrecondition, "Progress updates can't be added to a completed project.")
	ErrTaskAlreadyConverted     = apierrors.New(apierrors.KindPrecondition, "This admin task has already been converted to a project.")
)

// notFoundOr maps gorm.ErrRecordNotFound to notFound and wraps any other store failure
func notFoundOr(err error, notFound error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
