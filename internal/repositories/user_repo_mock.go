package repositories

import (
	"context"
	"sync"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users   map[string]models.User
	details map[string]models.DeliveryDetails
	mu      sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:   make(map[string]models.User),
		details: make(map[string]models.DeliveryDetails),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// GetByID returns a user by ID.
func (r *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user with ID %s", id)
	}
	return &u, nil
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.NotFound("user with email %s", email)
}

// CreateDeliveryDetails stores a delivery address.
func (r *MockUserRepository) CreateDeliveryDetails(ctx context.Context, details *models.DeliveryDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if details.ID == "" {
		details.ID = uuid.New().String()
	}
	details.CreatedAt = time.Now()
	details.UpdatedAt = time.Now()
	r.details[details.ID] = *details
	return nil
}

// GetDeliveryDetails returns a delivery-details record by ID.
func (r *MockUserRepository) GetDeliveryDetails(ctx context.Context, id string) (*models.DeliveryDetails, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.details[id]
	if !ok {
		return nil, apperrors.NotFound("delivery details with ID %s", id)
	}
	return &d, nil
}

// GetDeliveryDetailsByUser lists a user's delivery addresses.
func (r *MockUserRepository) GetDeliveryDetailsByUser(ctx context.Context, userID string) ([]models.DeliveryDetails, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.DeliveryDetails
	for _, d := range r.details {
		if d.UserID == userID {
			list = append(list, d)
		}
	}
	return list, nil
}
