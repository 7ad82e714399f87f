package models

// DashboardStats mirrors GET /admin/dashboard/stats.
type DashboardStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalDoctors      int64 `json:"totalDoctors"`
	TotalPatients     int64 `json:"totalPatients"`
	TotalAppointments int64 `json:"totalAppointments"`
}

// DoctorRating is one entry of the system report's doctor ranking.
type DoctorRating struct {
	DoctorID      int64   `json:"doctorId"`
	FullName      string  `json:"fullName"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// SystemReport mirrors GET /admin/reports.
type SystemReport struct {
	TotalAppointments int64          `json:"totalAppointments"`
	TotalRevenue      float64        `json:"totalRevenue"`
	DoctorRatings     []DoctorRating `json:"doctorRatings"`
}

// UserActivity mirrors one entry of GET /admin/user-activities.
type UserActivity struct {
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	ActivityType string `json:"activityType"`
	Description  string `json:"description"`
	Timestamp    string `json:"timestamp"`
}

// PaymentStats mirrors GET /admin/payments/statistics.
type PaymentStats struct {
	TotalPayments     int64   `json:"totalPayments"`
	TotalRevenue      float64 `json:"totalRevenue"`
	SuccessfulCount   int64   `json:"successfulCount"`
	PendingCount      int64   `json:"pendingCount"`
	FailedCount       int64   `json:"failedCount"`
	RefundedCount     int64   `json:"refundedCount"`
	RevenueThisMonth  float64 `json:"revenueThisMonth"`
	PaymentsThisMonth int64   `json:"paymentsThisMonth"`
}

// Notification is one message from the admin notification topics.
type Notification struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type,omitempty"`
	Title     string `json:"title,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt,omitempty"`
}
