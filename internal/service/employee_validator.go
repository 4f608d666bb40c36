package service

import (
	"regexp"
	"strings"

	"staffdesk/internal/errors"
)

var (
	emailRegex  = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	mobileRegex = regexp.MustCompile(`^\d{10}$`)
)

var allowedDesignations = map[string]bool{
	"HR":                 true,
	"Manager":            true,
	"Sales":              true,
	"Software Developer": true,
	"Web Developer":      true,
}

var allowedGenders = map[string]bool{
	"Male":   true,
	"Female": true,
}

var allowedCourses = map[string]bool{
	"MCA":    true,
	"BCA":    true,
	"BSC":    true,
	"B.Tech": true,
}

// EmployeeFields is the client-supplied field set for create and update.
type EmployeeFields struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Course      []string
}

// NormalizeCourses accepts either repeated values or a single
// comma-delimited value and returns the ordered course sequence.
func NormalizeCourses(values []string) []string {
	if len(values) == 1 && strings.Contains(values[0], ",") {
		return strings.Split(values[0], ",")
	}
	return values
}

// ValidateEmployeeFields checks the required fields, formats and
// enumerations. It expects courses to be normalized already.
func ValidateEmployeeFields(f EmployeeFields) error {
	if f.Name == "" || f.Email == "" || f.Mobile == "" || f.Designation == "" || f.Gender == "" || len(f.Course) == 0 {
		return errors.NewValidationError("All fields are required")
	}
	if !emailRegex.MatchString(f.Email) {
		return errors.NewValidationError("Invalid email format")
	}
	if !mobileRegex.MatchString(f.Mobile) {
		return errors.NewValidationError("Mobile number must be 10 digits")
	}
	if !allowedDesignations[f.Designation] {
		return errors.NewValidationError("Invalid designation")
	}
	if !allowedGenders[f.Gender] {
		return errors.NewValidationError("Invalid gender")
	}
	for _, course := range f.Course {
		if !allowedCourses[course] {
			return errors.NewValidationError("Courses must be one or more of: MCA, BCA, BSC, B.Tech")
		}
	}
	return nil
}
