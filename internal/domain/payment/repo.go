package payment

import (
	"stayhub/internal/domain"
)

// Repository defines the interface for Payment persistence.
type Repository interface {
	domain.ResourceRepository[*Payment]
}
