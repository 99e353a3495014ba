package invoice

import (
	"stayhub/internal/domain"
)

// Repository defines the interface for Invoice persistence.
type Repository interface {
	domain.ResourceRepository[*Invoice]
}
