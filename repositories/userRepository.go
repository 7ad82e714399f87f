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

const (
	// Snapshots are short-lived: the console re-fetches on every tab switch
	// and only uses the cache to absorb bursts.
	SnapshotCacheExpiry = time.Minute

	usersCacheKey = "snapshot:users"
)

// UserRepository serves the user collection from the upstream API, keeping
// a snapshot in redis. Failed reads fall back to a canned dataset so the
// console never renders an empty shell on a backend outage; auth failures
// are never masked.
type UserRepository struct {
	api   *backend.Client
	cache *cache.Store
}

func NewUserRepository(api *backend.Client, cache *cache.Store) *UserRepository {
	return &UserRepository{api: api, cache: cache}
}

// GetAll returns the current user snapshot.
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var users []models.User
	if err := r.cache.GetJSON(ctx, usersCacheKey, &users); err == nil {
		return users, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Failed to get users from cache: %v", err)
	}

	// On a non-auth failure the canned dataset is returned together with
	// the error: the caller renders the fallback and surfaces the error.
	if err := r.api.Get(ctx, "/admin/users", &users); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, err
		}
		log.Printf("Falling back to mock users: %v", err)
		return mockUsers(), err
	}

	if err := r.cache.SetJSON(ctx, usersCacheKey, users, SnapshotCacheExpiry); err != nil {
		log.Printf("Failed to set users in cache: %v", err)
	}
	return users, nil
}

// Register creates an account through the upstream auth endpoint and
// invalidates the snapshot.
func (r *UserRepository) Register(ctx context.Context, req interface{}) error {
	if err := r.api.Post(ctx, "/auth/register", req, nil); err != nil {
		return errors.Wrap(err, "register user")
	}
	r.invalidate(ctx)
	return nil
}

// Delete removes an account and invalidates the snapshot.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/admin/users/%d", id)); err != nil {
		return errors.Wrapf(err, "delete user %d", id)
	}
	r.invalidate(ctx)
	return nil
}

// Profile fetches the calling account's profile, used to gate admin access.
func (r *UserRepository) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := r.api.Get(ctx, "/users/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, usersCacheKey); err != nil {
		log.Printf("Failed to invalidate user snapshot: %v", err)
	}
}
