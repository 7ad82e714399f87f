package controllers

import (
	"TeleAdmin/handlers"

	"github.com/gin-gonic/gin"
)

// SetupConsoleRoutes registers the gated console API: tab navigation, the
// entity views and the transient UI state.
func SetupConsoleRoutes(
	router *gin.Engine,
	gate gin.HandlerFunc,
	tabHandler *handlers.TabHandler,
	dashboardHandler *handlers.DashboardHandler,
	userHandler *handlers.UserHandler,
	doctorHandler *handlers.DoctorHandler,
	patientHandler *handlers.PatientHandler,
	paymentHandler *handlers.PaymentHandler,
	notifyHandler *handlers.NotifyHandler,
) {
	api := router.Group("/api", gate)

	api.GET("/tabs", tabHandler.Current)
	api.POST("/tabs/:tab", tabHandler.Activate)

	api.GET("/dashboard", dashboardHandler.GetDashboard)
	api.POST("/dashboard/refresh", dashboardHandler.RefreshDashboard)
	api.DELETE("/reviews/:id", dashboardHandler.DeleteReview)

	api.GET("/users", userHandler.GetUsers)
	api.POST("/users/refresh", userHandler.RefreshUsers)
	api.POST("/users", userHandler.CreateUser)
	api.DELETE("/users/:id", userHandler.DeleteUser)

	api.GET("/doctors", doctorHandler.GetDoctors)
	api.POST("/doctors/refresh", doctorHandler.RefreshDoctors)
	api.POST("/doctors", doctorHandler.CreateDoctor)
	api.DELETE("/doctors/:id", doctorHandler.DeleteDoctor)

	api.GET("/patients", patientHandler.GetPatients)
	api.POST("/patients/refresh", patientHandler.RefreshPatients)
	api.POST("/patients", patientHandler.CreatePatient)
	api.DELETE("/patients/:id", patientHandler.DeletePatient)

	api.GET("/payments", paymentHandler.GetPayments)
	api.GET("/payments/export", paymentHandler.ExportPayments)
	api.POST("/payments/:id/refund", paymentHandler.RefundPayment)

	api.GET("/notifications", notifyHandler.GetFeed)
	api.GET("/toasts", notifyHandler.GetToasts)
	api.DELETE("/toasts/:id", notifyHandler.DismissToast)
	api.DELETE("/modal", notifyHandler.CloseModal)
}
