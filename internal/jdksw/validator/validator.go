package validator

import (
	"strings"
	"unicode"

	"github.com/OpenGG/jdksw/internal/jdksw/domain"
)

// ValidateName checks a JDK display name.
//
// The function rejects:
//   - Empty or whitespace-only names
//   - Control characters, including null bytes and newlines, which would
//     corrupt the configuration document and the table output
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domain.ErrJdkNameEmpty
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return domain.ErrJdkNameNonPrintable
		}
	}
	return nil
}

// NormalizeName trims whitespace and validates the name.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if err := ValidateName(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

// ValidateInstallRoot requires a non-empty JDK root. The directory itself is
// checked by the version probe, not here.
func ValidateInstallRoot(installRoot string) error {
	if strings.TrimSpace(installRoot) == "" {
		return domain.ErrInstallRootEmpty
	}
	return nil
}
