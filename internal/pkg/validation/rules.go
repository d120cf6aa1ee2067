package validation

import "regexp"

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Dataset name min/max length
	DatasetNameMinLength = 2
	DatasetNameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// IsValidEmail reports whether s looks like an email address. Used for
// soft warnings on import; a bad email never blocks allocation.
func IsValidEmail(s string) bool {
	return CompiledPatterns.Email.MatchString(s)
}
