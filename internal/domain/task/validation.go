package task

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/operations777/Reminder-bot/internal/domain"
)

// dueDatePattern matches the exact lexical form YYYY-MM-DD. The check
// is not calendar-aware: "2024-13-40" passes here and is left for the
// store's DATE column to reject.
var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateCreateRequest validates the fields of a task creation request.
func ValidateCreateRequest(req CreateRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("task text is empty: %w", domain.ErrValidation)
	}
	if !ValidDueDate(req.DueDate) {
		return fmt.Errorf("due date %q is not in YYYY-MM-DD form: %w", req.DueDate, domain.ErrValidation)
	}
	return nil
}

// ValidDueDate reports whether s matches the lexical date form.
func ValidDueDate(s string) bool {
	return dueDatePattern.MatchString(s)
}
