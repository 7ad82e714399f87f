package models

import (
	"strconv"
	"strings"
	"time"
)

// Roles recognized by the upstream platform.
const (
	RoleAdmin   = "ADMIN"
	RoleDoctor  = "DOCTOR"
	RolePatient = "PATIENT"
)

// Account statuses as reported by the upstream API.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusPending  = "PENDING"
	StatusNew      = "NEW"
)

// User represents a platform account as returned by GET /admin/users.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// Doctor represents a doctor profile as returned by GET /users/doctors.
type Doctor struct {
	ID         int64  `json:"id"`
	FullName   string `json:"fullName"`
	Specialty  string `json:"specialty"`
	Experience int    `json:"experience"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Status     string `json:"status"`
}

// Patient represents a patient profile as returned by GET /admin/users/patients.
type Patient struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Address     string `json:"address,omitempty"`
	Status      string `json:"status"`
}

// Age derives the patient's age from the date of birth. The upstream is
// inconsistent about formats, so a bare year and a full date are both
// accepted; anything unparseable yields 0 rather than an error.
func (p Patient) Age() int {
	return AgeFromBirthDate(p.DateOfBirth, time.Now().Year())
}

// AgeFromBirthDate computes currentYear - birthYear, clamped to >= 0.
// Malformed input yields 0.
func AgeFromBirthDate(dateOfBirth string, currentYear int) int {
	s := strings.TrimSpace(dateOfBirth)
	if s == "" {
		return 0
	}
	// Accept "2000-06-15", "2000/06/15" or a bare "2000".
	if i := strings.IndexAny(s, "-/"); i > 0 {
		s = s[:i]
	}
	year, err := strconv.Atoi(s)
	if err != nil || year <= 0 {
		return 0
	}
	age := currentYear - year
	if age < 0 {
		return 0
	}
	return age
}

// Payment statuses. The upstream emits both COMPLETED and SUCCESS for a
// successful transaction depending on the gateway; NormalizePaymentStatus
// folds them together.
const (
	PaymentSuccess   = "SUCCESS"
	PaymentCompleted = "COMPLETED"
	PaymentPending   = "PENDING"
	PaymentFailed    = "FAILED"
	PaymentCancelled = "CANCELLED"
	PaymentRefunded  = "REFUNDED"
)

// Payment represents a transaction as returned by the payment admin endpoints.
type Payment struct {
	ID            int64   `json:"id"`
	TransactionID string  `json:"transactionId,omitempty"`
	AppointmentID int64   `json:"appointmentId,omitempty"`
	PatientName   string  `json:"patientName"`
	DoctorName    string  `json:"doctorName"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

// NormalizePaymentStatus upper-cases a status and maps COMPLETED to SUCCESS.
func NormalizePaymentStatus(status string) string {
	s := strings.ToUpper(strings.TrimSpace(status))
	if s == PaymentCompleted {
		return PaymentSuccess
	}
	return s
}

// PaymentPage mirrors the page envelope of GET /admin/payments/all.
type PaymentPage struct {
	Content       []Payment `json:"content"`
	TotalPages    int       `json:"totalPages"`
	TotalElements int64     `json:"totalElements"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
	First         bool      `json:"first"`
	Last          bool      `json:"last"`
}
