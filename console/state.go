package console

import (
	"context"

	"TeleAdmin/feed"
	"TeleAdmin/notify"
	"TeleAdmin/services"
	"TeleAdmin/session"
)

// App is the explicit application-state container: every view module, the
// session manager and the shared UI services, created once at session
// start and passed by reference instead of living in globals.
type App struct {
	Sessions  *session.Manager
	Tabs      *Controller
	Auth      *services.AuthService
	Dashboard *services.DashboardService
	Users     *services.UserService
	Doctors   *services.DoctorService
	Patients  *services.PatientService
	Payments  *services.PaymentService
	Toasts    *notify.Service
	Feed      *feed.Feed
}

// Wire connects the tab controller to the view modules and the session
// teardown to the navigation reset.
func (a *App) Wire() {
	a.Tabs.Register(TabDashboard, a.Dashboard)
	a.Tabs.Register(TabReports, a.Dashboard)
	a.Tabs.Register(TabUsers, a.Users)
	a.Tabs.Register(TabDoctors, a.Doctors)
	a.Tabs.Register(TabPatients, a.Patients)
	a.Tabs.Register(TabPayments, a.Payments)

	// Leaving payments clears its cached filter snapshot and query mirror.
	a.Tabs.OnLeave(TabPayments, a.Payments.Reset)

	a.Sessions.OnLogout(func() {
		a.Tabs.Reset()
		a.Payments.Reset()
		a.Toasts.Push(notify.KindInfo, "Session ended, please sign in again")
	})
}

// Activate is the navigation entry point used by the handlers.
func (a *App) Activate(ctx context.Context, tab Tab) error {
	return a.Tabs.Activate(ctx, tab)
}
