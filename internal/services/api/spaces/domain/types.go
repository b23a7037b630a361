// Package domain holds spaces types and contracts
package domain

import "github.com/google/uuid"

// Space is one monitored room or area in the spaces directory
// TimezoneID is an IANA zone name and TargetCapacity is nil when the space
// has no configured capacity
type Space struct {
	ID             uuid.UUID `json:"id" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	Name           string    `json:"name" example:"Cafeteria"`
	TimezoneID     string    `json:"timezone" example:"America/New_York"`
	TargetCapacity *int      `json:"target_capacity,omitempty" example:"40"`
}
