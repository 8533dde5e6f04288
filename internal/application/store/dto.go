package store

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/store"
)

// CreateStoreRequest registers a store
type CreateStoreRequest struct {
	Code             string `json:"code" binding:"required,max=20"`
	Name             string `json:"name" binding:"required,max=200"`
	CostingMethod    string `json:"costing_method" binding:"required,oneof=weighted_average fifo lifo"`
	ExpiredLotPolicy string `json:"expired_lot_policy" binding:"omitempty,oneof=allow skip"`
	ContactName      string `json:"contact_name" binding:"max=100"`
	Phone            string `json:"phone" binding:"max=50"`
	Address          string `json:"address" binding:"max=500"`
	City             string `json:"city" binding:"max=100"`
	Timezone         string `json:"timezone" binding:"max=50"`
	Notes            string `json:"notes" binding:"max=1000"`
}

// UpdateStoreRequest updates contact details of a store
type UpdateStoreRequest struct {
	Name        string `json:"name" binding:"max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Address     string `json:"address" binding:"max=500"`
	City        string `json:"city" binding:"max=100"`
	Timezone    string `json:"timezone" binding:"max=50"`
	Notes       string `json:"notes" binding:"max=1000"`
}

// ChangeCostingMethodRequest switches the store's costing method
type ChangeCostingMethodRequest struct {
	CostingMethod string `json:"costing_method" binding:"required,oneof=weighted_average fifo lifo"`
}

// SetExpiredLotPolicyRequest switches how expired lots are consumed
type SetExpiredLotPolicyRequest struct {
	ExpiredLotPolicy string `json:"expired_lot_policy" binding:"required,oneof=allow skip"`
}

// StoreResponse is the API shape of a store
type StoreResponse struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Status           string    `json:"status"`
	CostingMethod    string    `json:"costing_method"`
	ExpiredLotPolicy string    `json:"expired_lot_policy"`
	ContactName      string    `json:"contact_name,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Address          string    `json:"address,omitempty"`
	City             string    `json:"city,omitempty"`
	Timezone         string    `json:"timezone,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}

// ToStoreResponse maps a store to its API shape
func ToStoreResponse(st *store.Store) StoreResponse {
	return StoreResponse{
		ID:               st.ID,
		Code:             st.Code,
		Name:             st.Name,
		Status:           st.Status.String(),
		CostingMethod:    st.CostingMethod.String(),
		ExpiredLotPolicy: string(st.ExpiredLotPolicy),
		ContactName:      st.ContactName,
		Phone:            st.Phone,
		Address:          st.Address,
		City:             st.City,
		Timezone:         st.Timezone,
		Notes:            st.Notes,
	}
}
