package usecase

import (
	"errors"
	"fmt"

	"skill-insight/internal/domain/analytics"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")

	ErrLearnerNotFound     = fmt.Errorf("learner %w", ErrNotFound)
	ErrSkillNotFound       = fmt.Errorf("skill %w", ErrNotFound)
	ErrSkillRecordNotFound = fmt.Errorf("skill record %w", ErrNotFound)
	ErrCourseNotFound      = fmt.Errorf("course %w", ErrNotFound)
	ErrCareerPathNotFound  = fmt.Errorf("career path %w", ErrNotFound)
)

// invalidInput keeps the reason of a domain validation error while making it
// match ErrInvalidInput.
func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// engineErr maps an analytics engine error onto the usecase sentinels.
func engineErr(err error) error {
	if errors.Is(err, analytics.ErrInvalidInput) {
		return invalidInput(err)
	}
	return ErrInternal
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}
