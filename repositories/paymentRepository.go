package repositories

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"TeleAdmin/backend"
	"TeleAdmin/models"

	"github.com/pkg/errors"
)

// PaymentRepository consumes the payment admin endpoints. Payments are
// never snapshot-cached: the page endpoint is already windowed and the
// range endpoint returns the full matching set, so caching would only
// serve stale money figures.
type PaymentRepository struct {
	api *backend.Client
}

func NewPaymentRepository(api *backend.Client) *PaymentRepository {
	return &PaymentRepository{api: api}
}

// ListPage fetches one server-side page. status is forwarded to the server
// so counts stay correct across pages; empty status means no status filter.
func (r *PaymentRepository) ListPage(ctx context.Context, page, size int, status string) (*models.PaymentPage, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("size", fmt.Sprint(size))
	if status != "" {
		q.Set("status", status)
	}

	var result models.PaymentPage
	if err := r.api.Get(ctx, "/admin/payments/all?"+q.Encode(), &result); err != nil {
		return nil, errors.Wrap(err, "list payments")
	}
	return &result, nil
}

// ListByDateRange fetches the full matching set for a date window.
func (r *PaymentRepository) ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]models.Payment, error) {
	q := url.Values{}
	q.Set("startDate", startDate.Format("2006-01-02"))
	q.Set("endDate", endDate.Format("2006-01-02"))

	var payments []models.Payment
	if err := r.api.Get(ctx, "/admin/payments/by-date-range?"+q.Encode(), &payments); err != nil {
		return nil, errors.Wrap(err, "list payments by date range")
	}
	return payments, nil
}

// Statistics fetches the aggregate payment figures for the dashboard.
func (r *PaymentRepository) Statistics(ctx context.Context) (*models.PaymentStats, error) {
	var stats models.PaymentStats
	if err := r.api.Get(ctx, "/admin/payments/statistics", &stats); err != nil {
		return nil, errors.Wrap(err, "payment statistics")
	}
	return &stats, nil
}

// Export streams the export file for the given format and optional date
// window. The caller closes the returned reader.
func (r *PaymentRepository) Export(ctx context.Context, format string, startDate, endDate *time.Time) (io.ReadCloser, string, error) {
	q := url.Values{}
	q.Set("format", format)
	if startDate != nil && endDate != nil {
		q.Set("startDate", startDate.Format("2006-01-02"))
		q.Set("endDate", endDate.Format("2006-01-02"))
	}
	body, contentType, err := r.api.Download(ctx, "/admin/payments/export?"+q.Encode())
	if err != nil {
		return nil, "", errors.Wrap(err, "export payments")
	}
	return body, contentType, nil
}

// Refund reverses a payment with a mandatory reason.
func (r *PaymentRepository) Refund(ctx context.Context, paymentID int64, reason string) error {
	path := fmt.Sprintf("/admin/payments/%d/refund?reason=%s", paymentID, url.QueryEscape(reason))
	if err := r.api.Post(ctx, path, nil, nil); err != nil {
		return errors.Wrapf(err, "refund payment %d", paymentID)
	}
	return nil
}
