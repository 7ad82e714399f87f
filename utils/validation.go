package utils

import (
	"errors"
	"time"

	"TeleAdmin/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors surfaced as blocking warnings before any request is sent.
var (
	ErrRangeIncomplete = errors.New("both start and end dates are required")
	ErrRangeInverted   = errors.New("start date must not be after end date")
	ErrRangeTooWide    = errors.New("date range must not exceed one year")
)

// DateLayout is the wire format for date query parameters.
const DateLayout = "2006-01-02"

// DateRange is a validated inclusive date window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange validates a start/end pair. Both empty means no range;
// anything partial or inverted or wider than a year is rejected.
func ParseDateRange(startStr, endStr string) (*DateRange, error) {
	if startStr == "" && endStr == "" {
		return nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, ErrRangeIncomplete
	}

	err := validation.Errors{
		"startDate": validation.Validate(startStr, validation.Required, validation.Date(DateLayout)),
		"endDate":   validation.Validate(endStr, validation.Required, validation.Date(DateLayout)),
	}.Filter()
	if err != nil {
		return nil, err
	}

	start, _ := time.Parse(DateLayout, startStr)
	end, _ := time.Parse(DateLayout, endStr)
	if start.After(end) {
		return nil, ErrRangeInverted
	}
	if end.Sub(start) > 365*24*time.Hour {
		return nil, ErrRangeTooWide
	}
	return &DateRange{Start: start, End: end}, nil
}

// ValidateRegisterRequest checks an account-creation form.
func ValidateRegisterRequest(req models.RegisterRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&req.Role, validation.Required, validation.In(models.RoleAdmin, models.RoleDoctor, models.RolePatient)),
	)
}

// ValidateCreateDoctorRequest checks a doctor-creation form.
func ValidateCreateDoctorRequest(req models.CreateDoctorRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&req.Specialty, validation.Required),
		validation.Field(&req.Experience, validation.Min(0)),
		validation.Field(&req.Phone, validation.Required, validation.Length(8, 15)),
	)
}

// ValidateCreatePatientRequest checks a patient-creation form.
func ValidateCreatePatientRequest(req models.CreatePatientRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&req.Gender, validation.Required, validation.In("MALE", "FEMALE", "OTHER")),
		validation.Field(&req.Phone, validation.Required, validation.Length(8, 15)),
	)
}
