package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrValidation is returned for malformed booking input: bad case reference,
// future-dated case year, unknown court, missing required field
var ErrValidation = errors.New("validation failed")

// CourtUnselected is the form sentinel for "no court chosen". It is never
// stored; amendments that carry it leave the court untouched.
const CourtUnselected = "unselected"

// caseRefPattern matches case references of the form number/year, e.g. 482/2024
var caseRefPattern = regexp.MustCompile(`^\d+/\d{4}$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// BookingRequest carries the input for booking a case onto a docket slot
type BookingRequest struct {
	Date           time.Time `validate:"required"`
	Commission     int       `validate:"required,min=1,max=7"`
	Court          string    `validate:"required"`
	Representative string
	CaseRef        string `validate:"required"`
}

// validateBookingRequest checks the request against the struct tags, the
// case reference format and the configured court list. The case year may not
// be later than the current year.
func validateBookingRequest(req BookingRequest, courts []string, today time.Time) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := validateCaseRef(req.CaseRef, today); err != nil {
		return err
	}
	return validateCourt(req.Court, courts)
}

func validateCaseRef(caseRef string, today time.Time) error {
	if !caseRefPattern.MatchString(caseRef) {
		return fmt.Errorf("%w: case reference %q must have the form number/year", ErrValidation, caseRef)
	}
	year, err := strconv.Atoi(caseRef[strings.IndexByte(caseRef, '/')+1:])
	if err != nil {
		return fmt.Errorf("%w: case reference %q has a malformed year", ErrValidation, caseRef)
	}
	if year > today.Year() {
		return fmt.Errorf("%w: case year %d is in the future", ErrValidation, year)
	}
	return nil
}

func validateCourt(court string, courts []string) error {
	if court == CourtUnselected {
		return fmt.Errorf("%w: a court must be selected", ErrValidation)
	}
	for _, c := range courts {
		if c == court {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown court %q", ErrValidation, court)
}

var titleCaser = cases.Title(language.Spanish)

// titleRepresentative normalizes a representative's name to title case, as
// the docket clerks expect it printed.
func titleRepresentative(name string) string {
	return titleCaser.String(strings.TrimSpace(name))
}
