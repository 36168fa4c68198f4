package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Mining errors
	ErrMsgInvalidLocation = "invalid mine location"
	ErrMsgInventoryFull   = "inventory is full"
	ErrMsgMiningClosed    = "mining is shutting down"

	// Ledger errors
	ErrMsgItemNotFound          = "item not found"
	ErrMsgInsufficientInventory = "insufficient inventory"

	// Database/System errors
	ErrMsgStorage      = "storage error"
	ErrMsgWriterClosed = "inventory writer is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidLocation = errors.New(ErrMsgInvalidLocation)
	ErrInventoryFull   = errors.New(ErrMsgInventoryFull)
	ErrMiningClosed    = errors.New(ErrMsgMiningClosed)

	ErrItemNotFound          = errors.New(ErrMsgItemNotFound)
	ErrInsufficientInventory = errors.New(ErrMsgInsufficientInventory)

	ErrStorage      = errors.New(ErrMsgStorage)
	ErrWriterClosed = errors.New(ErrMsgWriterClosed)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// ItemNotFoundError reports a cost line naming an item the user holds none of.
type ItemNotFoundError struct {
	ItemID uint32
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("%s: item %d", ErrMsgItemNotFound, e.ItemID)
}

func (e *ItemNotFoundError) Unwrap() error {
	return ErrItemNotFound
}

// InsufficientInventoryError reports how much quality was missing for a cost line.
type InsufficientInventoryError struct {
	ItemID    uint32
	Required  float32
	Available float32
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("%s: item %d requires %.2f total quality, %.2f available",
		ErrMsgInsufficientInventory, e.ItemID, e.Required, e.Available)
}

func (e *InsufficientInventoryError) Unwrap() error {
	return ErrInsufficientInventory
}

// Shortfall is the quality still missing to cover the requirement.
func (e *InsufficientInventoryError) Shortfall() float32 {
	return e.Required - e.Available
}
