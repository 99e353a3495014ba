package booking

import (
	"stayhub/internal/domain"
)

// Repository defines the interface for Booking persistence.
type Repository interface {
	domain.ResourceRepository[*Booking]
}
