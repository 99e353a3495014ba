package property

import (
	"stayhub/internal/domain"
)

// Repository defines the interface for Property persistence.
type Repository interface {
	domain.ResourceRepository[*Property]
}
