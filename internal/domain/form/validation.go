package form

import (
	"fmt"
	"strings"

	"github.com/operations777/Reminder-bot/internal/domain"
)

// ValidateReminderSelection checks a reminder-dispatch submission:
// both a target user and a task must be selected, and the task value
// must be a real task id rather than a placeholder token.
func ValidateReminderSelection(userID, taskValue string) error {
	var problems []string
	if userID == "" {
		problems = append(problems, "no user selected")
	}
	switch {
	case taskValue == "":
		problems = append(problems, "no task selected")
	case IsSentinel(taskValue):
		problems = append(problems, "a placeholder was selected instead of a task")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(problems, "; "), domain.ErrValidation)
	}
	return nil
}
