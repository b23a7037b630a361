package domain

import "github.com/google/uuid"

// ListInput filters the space listing
type ListInput struct {
	// optional filter to a subset of spaces
	SpaceIDs []uuid.UUID `json:"space_ids,omitempty" validate:"omitempty,max=500"`
}

// GetInput names one space
type GetInput struct {
	SpaceID uuid.UUID `json:"space_id" validate:"required" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
}
