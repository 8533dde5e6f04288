package store

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
)

// StoreStatus represents the status of a store
type StoreStatus string

const (
	StoreStatusActive   StoreStatus = "active"
	StoreStatusInactive StoreStatus = "inactive"
)

// String returns the string representation of StoreStatus
func (s StoreStatus) String() string {
	return string(s)
}

// Store is a physical location holding its own stock. Each store carries
// its own costing method and expired lot policy, applied to every
// consumption it records.
type Store struct {
	shared.BaseAggregateRoot
	Code             string                     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name             string                     `gorm:"type:varchar(200);not null"`
	Status           StoreStatus                `gorm:"type:varchar(20);not null;default:'active'"`
	CostingMethod    inventory.CostingMethod    `gorm:"type:varchar(20);not null;default:'weighted_average'"`
	ExpiredLotPolicy inventory.ExpiredLotPolicy `gorm:"type:varchar(20);not null;default:'allow'"`
	ContactName      string                     `gorm:"type:varchar(100)"`
	Phone            string                     `gorm:"type:varchar(50)"`
	Address          string                     `gorm:"type:text"`
	City             string                     `gorm:"type:varchar(100)"`
	Timezone         string                     `gorm:"type:varchar(50);default:'UTC'"`
	Notes            string                     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new store with the default costing configuration
func NewStore(code, name string, costingMethod inventory.CostingMethod) (*Store, error) {
	if err := validateStoreCode(code); err != nil {
		return nil, err
	}
	if err := validateStoreName(name); err != nil {
		return nil, err
	}
	if !costingMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_COSTING_METHOD", "Invalid costing method")
	}

	store := &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            StoreStatusActive,
		CostingMethod:     costingMethod,
		ExpiredLotPolicy:  inventory.ExpiredLotPolicyAllow,
		Timezone:          "UTC",
	}

	store.AddDomainEvent(NewStoreCreatedEvent(store))

	return store, nil
}

// Update updates the store's basic information
func (s *Store) Update(name string) error {
	if err := validateStoreName(name); err != nil {
		return err
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetContact sets the store's contact information
func (s *Store) SetContact(contactName, phone string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	s.ContactName = contactName
	s.Phone = phone
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetAddress sets the store's address
func (s *Store) SetAddress(address, city string) error {
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	if city != "" && len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}

	s.Address = address
	s.City = city
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// ChangeCostingMethod switches the method used to cost future consumption.
// Existing costing records keep the method they were written with.
func (s *Store) ChangeCostingMethod(method inventory.CostingMethod) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_COSTING_METHOD", "Invalid costing method")
	}
	if s.CostingMethod == method {
		return nil
	}

	old := s.CostingMethod
	s.CostingMethod = method
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStoreCostingMethodChangedEvent(s, old, method))

	return nil
}

// SetExpiredLotPolicy sets how allocation treats expired lots
func (s *Store) SetExpiredLotPolicy(policy inventory.ExpiredLotPolicy) error {
	if !policy.IsValid() {
		return shared.NewDomainError("INVALID_POLICY", "Invalid expired lot policy")
	}

	s.ExpiredLotPolicy = policy
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Enable makes the store active
func (s *Store) Enable() error {
	if s.Status == StoreStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Store is already active")
	}

	s.Status = StoreStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Disable makes the store inactive
func (s *Store) Disable() error {
	if s.Status == StoreStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Store is already inactive")
	}

	s.Status = StoreStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// IsActive returns true if the store is active
func (s *Store) IsActive() bool {
	return s.Status == StoreStatusActive
}

func validateStoreCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Store code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Store code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Store code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateStoreName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Store name cannot exceed 200 characters")
	}
	return nil
}
