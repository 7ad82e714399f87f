package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"TeleAdmin/models"

	"github.com/pkg/errors"
)

// ErrConfirmationRequired is returned when a destructive action is invoked
// without the explicit confirmation step.
var ErrConfirmationRequired = errors.New("destructive action requires confirmation")

// UserSource is the slice of the upstream API the user view consumes.
type UserSource interface {
	GetAll(ctx context.Context) ([]models.User, error)
	Register(ctx context.Context, req interface{}) error
	Delete(ctx context.Context, id int64) error
	Profile(ctx context.Context) (*models.User, error)
}

// DoctorSource is the slice of the upstream API the doctor view consumes.
type DoctorSource interface {
	GetAll(ctx context.Context) ([]models.Doctor, error)
	Create(ctx context.Context, req interface{}) error
	Delete(ctx context.Context, id int64) error
}

// PatientSource is the slice of the upstream API the patient view consumes.
type PatientSource interface {
	GetAll(ctx context.Context) ([]models.Patient, error)
	Create(ctx context.Context, req interface{}) error
	Delete(ctx context.Context, id int64) error
}

// PaymentSource is the slice of the upstream API the payments view consumes.
type PaymentSource interface {
	ListPage(ctx context.Context, page, size int, status string) (*models.PaymentPage, error)
	ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]models.Payment, error)
	Statistics(ctx context.Context) (*models.PaymentStats, error)
	Export(ctx context.Context, format string, startDate, endDate *time.Time) (io.ReadCloser, string, error)
	Refund(ctx context.Context, paymentID int64, reason string) error
}

// ReportSource is the slice of the upstream API the dashboard consumes.
type ReportSource interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	SystemReport(ctx context.Context) (*models.SystemReport, error)
	UserActivities(ctx context.Context) ([]models.UserActivity, error)
	DeleteReview(ctx context.Context, reviewID int64) error
}

// Summary accompanies every table render: how many rows survived the
// filters out of the full snapshot.
type Summary struct {
	Filtered int            `json:"filtered"`
	Total    int            `json:"total"`
	Label    string         `json:"label"`
	Counts   map[string]int `json:"counts,omitempty"`
}

func newSummary(filtered, total int) Summary {
	return Summary{
		Filtered: filtered,
		Total:    total,
		Label:    fmt.Sprintf("%d / %d kết quả", filtered, total),
	}
}
