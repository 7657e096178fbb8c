package models

import (
	"fmt"
	"math"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	minProjectName        = 3
	minProjectDescription = 10
	minServiceName        = 3
	minServiceDescription = 5
	minProfileName        = 2
)

// Validate checks the registration form. Password confirmation is checked
// by the account store after the duplicate-email check.
func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || in.Email == "" || in.Password == "" {
		return fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	return validateEmail(in.Email)
}

// Validate checks the profile fields that are being changed.
func (p ProfilePatch) Validate() error {
	if p.Name != nil && utf8.RuneCountInString(strings.TrimSpace(*p.Name)) < minProfileName {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, minProfileName)
	}
	if p.Email != nil {
		return validateEmail(*p.Email)
	}
	return nil
}

// Validate checks the project creation form.
func (in ProjectInput) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < minProjectName {
		return fmt.Errorf("%w: project name must be at least %d characters", ErrInvalidInput, minProjectName)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Description)) < minProjectDescription {
		return fmt.Errorf("%w: description must be at least %d characters", ErrInvalidInput, minProjectDescription)
	}
	if !slices.Contains(Categories, in.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	return validateBudget(in.Budget)
}

// Validate checks the project patch.
func (p ProjectPatch) Validate() error {
	if p.Budget != nil {
		return validateBudget(*p.Budget)
	}
	return nil
}

// Validate checks the service form.
func (in ServiceInput) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < minServiceName {
		return fmt.Errorf("%w: service name must be at least %d characters", ErrInvalidInput, minServiceName)
	}
	if !finite(in.Cost) {
		return fmt.Errorf("%w: cost must be a finite amount", ErrInvalidInput)
	}
	if in.Cost <= 0 {
		return fmt.Errorf("%w: cost must be greater than zero", ErrInvalidInput)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Description)) < minServiceDescription {
		return fmt.Errorf("%w: description must be at least %d characters", ErrInvalidInput, minServiceDescription)
	}
	return nil
}

func validateBudget(budget float64) error {
	if !finite(budget) {
		return fmt.Errorf("%w: budget must be a finite amount", ErrInvalidInput)
	}
	if budget < 0 {
		return fmt.Errorf("%w: budget cannot be negative", ErrInvalidInput)
	}
	return nil
}

// finite rejects NaN and ±Inf, which cannot be stored as JSON.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address %q", ErrInvalidInput, email)
	}
	return nil
}
