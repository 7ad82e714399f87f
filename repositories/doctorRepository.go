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

const doctorsCacheKey = "snapshot:doctors"

// DoctorRepository serves the doctor collection from the upstream API with
// the same snapshot-cache and mock-fallback policy as UserRepository.
type DoctorRepository struct {
	api   *backend.Client
	cache *cache.Store
}

func NewDoctorRepository(api *backend.Client, cache *cache.Store) *DoctorRepository {
	return &DoctorRepository{api: api, cache: cache}
}

// GetAll returns the current doctor snapshot.
func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var doctors []models.Doctor
	if err := r.cache.GetJSON(ctx, doctorsCacheKey, &doctors); err == nil {
		return doctors, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Failed to get doctors from cache: %v", err)
	}

	if err := r.api.Get(ctx, "/users/doctors", &doctors); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, err
		}
		log.Printf("Falling back to mock doctors: %v", err)
		return mockDoctors(), err
	}

	if err := r.cache.SetJSON(ctx, doctorsCacheKey, doctors, SnapshotCacheExpiry); err != nil {
		log.Printf("Failed to set doctors in cache: %v", err)
	}
	return doctors, nil
}

// Create registers a doctor account through the upstream auth endpoint.
func (r *DoctorRepository) Create(ctx context.Context, req interface{}) error {
	if err := r.api.Post(ctx, "/auth/create-doctor", req, nil); err != nil {
		return errors.Wrap(err, "create doctor")
	}
	r.invalidate(ctx)
	return nil
}

// Delete removes a doctor account.
func (r *DoctorRepository) Delete(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/admin/users/doctors/%d", id)); err != nil {
		return errors.Wrapf(err, "delete doctor %d", id)
	}
	r.invalidate(ctx)
	return nil
}

func (r *DoctorRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, doctorsCacheKey); err != nil {
		log.Printf("Failed to invalidate doctor snapshot: %v", err)
	}
}
