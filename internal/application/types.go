package application

import (
	"fmt"

	"vartree/internal/domain"
)

// Re-export domain types for use by adapters
type (
	Value        = domain.Value
	Entry        = domain.Entry
	ModelIndex   = domain.ModelIndex
	VariantModel = domain.VariantModel
	Path         = domain.Path
	Role         = domain.Role
	Orientation  = domain.Orientation
)

const (
	RoleDisplay = domain.RoleDisplay
	Horizontal  = domain.Horizontal
	Vertical    = domain.Vertical
)

// ParsePath parses a path expression such as .partitions[0].device
func ParsePath(s string) (Path, error) {
	p, err := domain.ParsePath(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	return p, nil
}
