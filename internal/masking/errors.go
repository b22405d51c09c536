package masking

import (
	"fmt"
	"log/slog"
)

// CleanupError records why a masking or cleanup step was abandoned.
type CleanupError struct {
	Step    string
	Message string
	Cause   error
}

func (e *CleanupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cleanup error in %s: %s: %v", e.Step, e.Message, e.Cause)
	}
	return fmt.Sprintf("cleanup error in %s: %s", e.Step, e.Message)
}

func (e *CleanupError) Unwrap() error {
	return e.Cause
}

// SafeMask runs op over text. If op panics the original text is returned
// unchanged together with a *CleanupError naming the step.
func SafeMask(step string, text string, op func(string) string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			out = text
			err = &CleanupError{Step: step, Message: "text left unmodified", Cause: cause}
		}
	}()
	return op(text), nil
}

// MaskOrKeep is SafeMask with the failure logged instead of returned.
func MaskOrKeep(logger *slog.Logger, step string, text string, op func(string) string) string {
	out, err := SafeMask(step, text, op)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("masking failed", "step", step, "error", err)
	}
	return out
}
