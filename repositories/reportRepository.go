package repositories

import (
	"context"
	"fmt"
	"log"

	"TeleAdmin/backend"
	"TeleAdmin/models"

	"github.com/pkg/errors"
)

// ReportRepository consumes the dashboard and monitoring endpoints. Reports
// follow the mock-fallback policy so the dashboard stays populated during a
// backend outage.
type ReportRepository struct {
	api *backend.Client
}

func NewReportRepository(api *backend.Client) *ReportRepository {
	return &ReportRepository{api: api}
}

// DashboardStats fetches the headline counters.
func (r *ReportRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := r.api.Get(ctx, "/admin/dashboard/stats", &stats); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, err
		}
		log.Printf("Falling back to mock dashboard stats: %v", err)
		return mockDashboardStats(), err
	}
	return &stats, nil
}

// SystemReport fetches appointment/revenue totals and doctor ratings.
func (r *ReportRepository) SystemReport(ctx context.Context) (*models.SystemReport, error) {
	var report models.SystemReport
	if err := r.api.Get(ctx, "/admin/reports", &report); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, err
		}
		log.Printf("Falling back to mock system report: %v", err)
		return mockSystemReport(), err
	}
	return &report, nil
}

// UserActivities fetches the recent activity trail.
func (r *ReportRepository) UserActivities(ctx context.Context) ([]models.UserActivity, error) {
	var activities []models.UserActivity
	if err := r.api.Get(ctx, "/admin/user-activities", &activities); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, err
		}
		log.Printf("Falling back to mock user activities: %v", err)
		return mockUserActivities(), err
	}
	return activities, nil
}

// DeleteReview removes a review as a moderation action. Writes get no
// fallback; the error surfaces as-is.
func (r *ReportRepository) DeleteReview(ctx context.Context, reviewID int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/admin/reviews/%d", reviewID)); err != nil {
		return errors.Wrapf(err, "delete review %d", reviewID)
	}
	return nil
}
