package repositories

import "TeleAdmin/models"

// Canned datasets shown when the upstream is unreachable. They keep every
// view populated while the error toast tells the administrator what broke.

func mockUsers() []models.User {
	return []models.User{
		{ID: 1, Username: "admin", FullName: "System Administrator", Email: "admin@telemed.local", Role: models.RoleAdmin, Status: models.StatusActive, CreatedAt: "2024-01-05T08:00:00"},
		{ID: 2, Username: "ngocanh.tran", FullName: "Tran Ngoc Anh", Email: "ngocanh@telemed.local", Role: models.RoleDoctor, Status: models.StatusActive, CreatedAt: "2024-02-11T09:30:00"},
		{ID: 3, Username: "minh.le", FullName: "Le Van Minh", Email: "minh.le@telemed.local", Role: models.RolePatient, Status: models.StatusPending, CreatedAt: "2024-03-22T14:10:00"},
		{ID: 4, Username: "thu.pham", FullName: "Pham Thi Thu", Email: "thu.pham@telemed.local", Role: models.RolePatient, Status: models.StatusNew, CreatedAt: "2024-04-01T10:45:00"},
	}
}

func mockDoctors() []models.Doctor {
	return []models.Doctor{
		{ID: 11, FullName: "Tran Ngoc Anh", Specialty: "Cardiology", Experience: 12, Phone: "0901000001", Email: "ngocanh@telemed.local", Status: models.StatusActive},
		{ID: 12, FullName: "Nguyen Quoc Bao", Specialty: "Dermatology", Experience: 4, Phone: "0901000002", Status: models.StatusActive},
		{ID: 13, FullName: "Hoang Thi Cam", Specialty: "Pediatrics", Experience: 1, Phone: "0901000003", Status: models.StatusInactive},
	}
}

func mockPatients() []models.Patient {
	return []models.Patient{
		{ID: 21, FullName: "Le Van Minh", DateOfBirth: "1988-07-14", Gender: "MALE", Phone: "0902000001", Address: "Hanoi", Status: models.StatusActive},
		{ID: 22, FullName: "Pham Thi Thu", DateOfBirth: "2001-02-03", Gender: "FEMALE", Phone: "0902000002", Address: "Da Nang", Status: models.StatusActive},
		{ID: 23, FullName: "Vo Van Tam", DateOfBirth: "1954", Gender: "MALE", Phone: "0902000003", Status: models.StatusInactive},
	}
}

func mockDashboardStats() *models.DashboardStats {
	return &models.DashboardStats{
		TotalUsers:        128,
		TotalDoctors:      17,
		TotalPatients:     104,
		TotalAppointments: 342,
	}
}

func mockSystemReport() *models.SystemReport {
	return &models.SystemReport{
		TotalAppointments: 342,
		TotalRevenue:      85600000,
		DoctorRatings: []models.DoctorRating{
			{DoctorID: 11, FullName: "Tran Ngoc Anh", AverageRating: 4.8, TotalReviews: 96},
			{DoctorID: 12, FullName: "Nguyen Quoc Bao", AverageRating: 4.5, TotalReviews: 41},
		},
	}
}

func mockUserActivities() []models.UserActivity {
	return []models.UserActivity{
		{UserID: 2, Username: "ngocanh.tran", ActivityType: "LOGIN", Description: "Doctor signed in", Timestamp: "2024-05-02T08:01:00"},
		{UserID: 3, Username: "minh.le", ActivityType: "APPOINTMENT", Description: "Booked appointment #512", Timestamp: "2024-05-02T08:15:00"},
	}
}
