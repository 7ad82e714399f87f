package repositories

import (
	"context"
	"fmt"
	"log"
	"time"

	"TeleAdmin/backend"
	"TeleAdmin/cache"
	"TeleAdmin/models"

	"github.com/pkg/errors"
)

const patientsCacheKey = "snapshot:patients"

// PatientRepository serves the patient collection from the upstream API.
type PatientRepository struct {
	api   *backend.Client
	cache *cache.Store
}

func NewPatientRepository(api *backend.Client, cache *cache.Store) *PatientRepository {
	return &PatientRepository{api: api, cache: cache}
}

// GetAll returns the current patient snapshot.
func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var patients []models.Patient
	if err := r.cache.GetJSON(ctx, patientsCacheKey, &patients); err == nil {
		return patients, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Failed to get patients from cache: %v", err)
	}

	if err := r.api.Get(ctx, "/admin/users/patients", &patients); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, err
		}
		log.Printf("Falling back to mock patients: %v", err)
		return mockPatients(), err
	}

	if err := r.cache.SetJSON(ctx, patientsCacheKey, patients, SnapshotCacheExpiry); err != nil {
		log.Printf("Failed to set patients in cache: %v", err)
	}
	return patients, nil
}

// Create adds a patient account through the admin endpoint.
func (r *PatientRepository) Create(ctx context.Context, req interface{}) error {
	if err := r.api.Post(ctx, "/admin/users/patients", req, nil); err != nil {
		return errors.Wrap(err, "create patient")
	}
	r.invalidate(ctx)
	return nil
}

// Delete removes a patient account.
func (r *PatientRepository) Delete(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/admin/users/patients/%d", id)); err != nil {
		return errors.Wrapf(err, "delete patient %d", id)
	}
	r.invalidate(ctx)
	return nil
}

func (r *PatientRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, patientsCacheKey); err != nil {
		log.Printf("Failed to invalidate patient snapshot: %v", err)
	}
}
