package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_StartMiningRequest(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name     string
		location string
		wantErr  bool
	}{
		{"valid", "quarry", false},
		{"empty", "", true},
		{"control characters", "quarry\n", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(StartMiningRequest{Location: tt.location})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_InventoryParams(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(InventoryParams{SortBy: "value", SortDirection: "asc"}))
	assert.NoError(t, v.ValidateStruct(InventoryParams{}))
	assert.Error(t, v.ValidateStruct(InventoryParams{SortBy: "name"}))
	assert.Error(t, v.ValidateStruct(InventoryParams{SortDirection: "sideways"}))
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	t.Run("validation errors", func(t *testing.T) {
		err := v.ValidateStruct(InventoryParams{SortBy: "name"})
		require.Error(t, err)

		fields := FormatValidationError(err)
		assert.Contains(t, fields["sortby"], "Must be one of")
	})

	t.Run("required", func(t *testing.T) {
		fields := FormatValidationError(v.ValidateStruct(StartMiningRequest{}))
		assert.Equal(t, "This field is required", fields["location"])
	})

	t.Run("other error", func(t *testing.T) {
		fields := FormatValidationError(errors.New("boom"))
		assert.Equal(t, "Invalid request format", fields["error"])
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, FormatValidationError(nil))
	})
}
