package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase asc", "asc", "ASC"},
		{"uppercase asc", "ASC", "ASC"},
		{"padded asc", "  asc  ", "ASC"},
		{"lowercase desc", "desc", "DESC"},
		{"empty defaults to desc", "", "DESC"},
		{"injection attempt defaults to desc", "ASC; DROP TABLE items", "DESC"},
		{"garbage defaults to desc", "sideways", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"allowed field passes", "sku", "sku"},
		{"padded allowed field passes", "  name  ", "name"},
		{"empty falls back", "", "created_at"},
		{"unknown field falls back", "password", "created_at"},
		{"injection attempt falls back", "sku; DELETE FROM items", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, ItemSortFields, "created_at"))
		})
	}
}
