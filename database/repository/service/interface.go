package serviceRepo

import "huduma/models"

// ServiceRepository defines methods for catalog service data access.
type ServiceRepository interface {
	// Create inserts a new service record.
	Create(service *models.Service) error
	// GetByID retrieves a service by its unique ID, or nil if absent.
	GetByID(id string) (*models.Service, error)
	// GetByIDs retrieves the services matching the given IDs. Missing IDs
	// are simply absent from the result; callers detect partial resolution
	// by comparing lengths.
	GetByIDs(ids []string) ([]models.Service, error)
	// ListByProvider retrieves all services published by a provider.
	ListByProvider(providerID string) ([]models.Service, error)
	// List retrieves all services.
	List() ([]models.Service, error)
	// Update overwrites the mutable fields of a service.
	Update(id string, service *models.Service) error
	// Delete removes a service from the catalog. Existing bookings keep
	// their price snapshots and are unaffected.
	Delete(id string) error
}
