package domain

import "time"

// ServiceType is a catalog entry describing the kind of service requested.
type ServiceType struct {
	ID          string
	Name        string
	Description *string
	Active      bool
	CreatedAt   time.Time
}
