package models

// LoginRequest carries the credentials forwarded to the upstream login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the client-relevant part of the upstream auth response.
type LoginResult struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Role  string `json:"role"`
}

// RegisterRequest creates a user account via POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateDoctorRequest creates a doctor account via POST /auth/create-doctor.
type CreateDoctorRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Specialty  string `json:"specialty"`
	Experience int    `json:"experience"`
	Phone      string `json:"phone"`
}

// CreatePatientRequest creates a patient via POST /admin/users/patients.
type CreatePatientRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Address     string `json:"address,omitempty"`
}
