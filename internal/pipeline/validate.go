package pipeline

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultMaxSizeBytes is the default per-file size cap (5 MB).
const DefaultMaxSizeBytes = 5 * 1024 * 1024

// Policy is the validation configuration applied to every file in a batch.
type Policy struct {
	MaxSizeBytes int64
	AllowedTypes []string
}

// DefaultPolicy allows the common browser-displayable image types up to 5 MB.
func DefaultPolicy() Policy {
	return Policy{
		MaxSizeBytes: DefaultMaxSizeBytes,
		AllowedTypes: []string{
			"image/jpeg",
			"image/jpg",
			"image/png",
			"image/gif",
			"image/webp",
		},
	}
}

// Validate checks a file against the policy. The type and size checks are
// independent; a file can violate both and collect both errors. Validate has
// no side effects and always returns a result.
func Validate(f File, p Policy) ValidationResult {
	var errs []string

	if !slices.Contains(p.AllowedTypes, f.MIMEType) {
		errs = append(errs, fmt.Sprintf(
			"Invalid file type: %s. Allowed types: %s",
			f.MIMEType, strings.Join(p.AllowedTypes, ", ")))
	}

	if f.Size > p.MaxSizeBytes {
		errs = append(errs, fmt.Sprintf(
			"File too large: %sMB. Maximum size: %sMB",
			formatMB(f.Size), formatMB(p.MaxSizeBytes)))
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func formatMB(bytes int64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/(1024*1024))
}
