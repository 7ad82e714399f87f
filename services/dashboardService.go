package services

import (
	"context"
	"sync"

	"TeleAdmin/feed"
	"TeleAdmin/models"
	"TeleAdmin/notify"
)

// DashboardView is the rendered dashboard tab. Each region is fetched
// independently, so a slow or failing report never blanks the others.
type DashboardView struct {
	Stats        *models.DashboardStats `json:"stats,omitempty"`
	Report       *models.SystemReport   `json:"report,omitempty"`
	PaymentStats *models.PaymentStats   `json:"paymentStats,omitempty"`
	Activities   []models.UserActivity  `json:"activities,omitempty"`
	// Live indicates the stats region was refreshed over the message bus.
	Live          bool                  `json:"live"`
	FeedConnected bool                  `json:"feedConnected"`
	Notifications []models.Notification `json:"notifications,omitempty"`
}

// DashboardService aggregates the monitoring regions of the console.
type DashboardService struct {
	reports  ReportSource
	payments PaymentSource
	feed     *feed.Feed
	toasts   *notify.Service

	mu           sync.Mutex
	stats        *models.DashboardStats
	report       *models.SystemReport
	paymentStats *models.PaymentStats
	activities   []models.UserActivity
}

func NewDashboardService(reports ReportSource, payments PaymentSource, liveFeed *feed.Feed, toasts *notify.Service) *DashboardService {
	return &DashboardService{
		reports:  reports,
		payments: payments,
		feed:     liveFeed,
		toasts:   toasts,
	}
}

// Load fetches all dashboard regions concurrently. Regions fail
// independently: each failure surfaces its own toast while the others
// still render.
func (s *DashboardService) Load(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		stats, err := s.reports.DashboardStats(ctx)
		if err != nil && stats == nil {
			return
		}
		if err != nil {
			s.toasts.Push(notify.KindError, "Failed to load dashboard stats; showing sample data")
		}
		s.mu.Lock()
		s.stats = stats
		s.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		report, err := s.reports.SystemReport(ctx)
		if err != nil && report == nil {
			return
		}
		if err != nil {
			s.toasts.Push(notify.KindError, "Failed to load system report; showing sample data")
		}
		s.mu.Lock()
		s.report = report
		s.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		stats, err := s.payments.Statistics(ctx)
		if err != nil {
			s.toasts.Push(notify.KindError, "Failed to load payment statistics")
			return
		}
		s.mu.Lock()
		s.paymentStats = stats
		s.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		activities, err := s.reports.UserActivities(ctx)
		if err != nil && activities == nil {
			return
		}
		if err != nil {
			s.toasts.Push(notify.KindError, "Failed to load user activities; showing sample data")
		}
		s.mu.Lock()
		s.activities = activities
		s.mu.Unlock()
	}()

	wg.Wait()
	return nil
}

// View renders the dashboard. Stats pushed over the message bus take
// precedence over the last fetched snapshot.
func (s *DashboardService) View() DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := DashboardView{
		Stats:        s.stats,
		Report:       s.report,
		PaymentStats: s.paymentStats,
		Activities:   s.activities,
	}
	if s.feed != nil {
		if live := s.feed.LiveStats(); live != nil {
			view.Stats = live
			view.Live = true
		}
		view.FeedConnected = s.feed.IsConnected()
		view.Notifications = s.feed.Entries()
	}
	return view
}

// DeleteReview removes a review as a moderation action, after explicit
// confirmation.
func (s *DashboardService) DeleteReview(ctx context.Context, reviewID int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := s.reports.DeleteReview(ctx, reviewID); err != nil {
		s.toasts.Push(notify.KindError, "Failed to delete review: "+err.Error())
		return err
	}
	s.toasts.Push(notify.KindSuccess, "Review deleted")
	return nil
}
