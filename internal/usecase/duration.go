// Package usecase contains application business logic.
package usecase

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
)

// ParseDuration converts a compact duration token like "30m", "1h" or
// "45s" into a time.Duration. The token must be one or more decimal
// digits followed by exactly one unit character; combined units such as
// "1h30m" are not supported.
//
// The digit run is validated before the unit, so "m30" reports a format
// error rather than an unknown unit.
func ParseDuration(token string) (time.Duration, error) {
	if len(token) < 2 {
		return 0, fmt.Errorf("parse duration %q: %w", token, domain.ErrInvalidFormat)
	}

	digits := token[:len(token)-1]
	unit := token[len(token)-1]

	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", token, domain.ErrInvalidFormat)
	}

	switch unit {
	case 's':
		return time.Duration(n) * time.Second, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	default:
		return 0, fmt.Errorf("parse duration %q: %w", token, domain.ErrInvalidUnit)
	}
}
