package scenario

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/scorekeeper/internal/platform/errors"
)

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

// checkOutcome compares an operation result with the step's optional
// "rejected" code. Errors that are not rejections are returned as-is.
func (r *Runner) checkOutcome(err error, args map[string]any) error {
	want := apperrors.Code(optionalString(args, "rejected", ""))
	got := apperrors.CodeOf(err)

	if err != nil && !got.IsRejection() {
		return err
	}
	switch {
	case want == "" && err != nil:
		return r.assertf("unexpected rejection %s: %v", got, err)
	case want != "" && err == nil:
		return r.assertf("expected rejection %s, operation succeeded", want)
	case want != "" && got != want:
		return r.assertf("rejection = %s, want %s", got, want)
	}
	return nil
}

// scoreText renders a DSL score value as the raw text a user would type.
func scoreText(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case int:
		return strconv.Itoa(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return ""
	}
}

func requiredString(args map[string]any, key string) string {
	value, ok := args[key]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return ""
}

func readString(args map[string]any, key string) (string, bool) {
	value, ok := args[key]
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

func optionalString(args map[string]any, key, fallback string) string {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return fallback
}

func readInt(args map[string]any, key string) (int, bool) {
	value, ok := args[key]
	if !ok {
		return 0, false
	}
	switch typed := value.(type) {
	case int:
		return typed, true
	case float64:
		return int(typed), true
	default:
		return 0, false
	}
}

func readBool(args map[string]any, key string) (bool, bool) {
	value, ok := args[key]
	if !ok {
		return false, false
	}
	switch typed := value.(type) {
	case bool:
		return typed, true
	case string:
		lower := strings.ToLower(strings.TrimSpace(typed))
		switch lower {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	}
	return false, false
}

func readIntList(value any) ([]int, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", value)
	}
	out := make([]int, len(items))
	for i, item := range items {
		number, ok := item.(int)
		if !ok {
			return nil, fmt.Errorf("item %d: expected an integer, got %v", i+1, item)
		}
		out[i] = number
	}
	return out, nil
}

func readStringList(value any) ([]string, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", value)
	}
	out := make([]string, len(items))
	for i, item := range items {
		text, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("item %d: expected a string, got %v", i+1, item)
		}
		out[i] = text
	}
	return out, nil
}
