package services

import (
	"fmt"
	"time"

	apperrors "github.com/4Clarity/Better-sub003/internal/errors"
	"github.com/4Clarity/Better-sub003/internal/models"
)

// startOfDay zeroes the clock portion of t. The not-in-the-past check
// compares against the start of the current day so a due date of today
// is accepted.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// validateDueDate enforces the due-date rules shared by tasks and milestones:
// not before the start of today, and inside the owning transition's
// [StartDate, EndDate] window. entity names the caller in the window message.
func validateDueDate(entity string, transition *models.Transition, dueDate time.Time) error {
	if dueDate.Before(startOfDay(time.Now())) {
		return apperrors.NewValidation("Due date cannot be in the past")
	}
	if dueDate.Before(transition.StartDate) || dueDate.After(transition.EndDate) {
		return apperrors.NewValidation(fmt.Sprintf("%s due date must be within transition timeframe", entity))
	}
	return nil
}
