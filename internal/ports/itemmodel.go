package ports

import "vartree/internal/domain"

// ItemModel is the hierarchical two-column model consumed by views.
// Implementations never fail: bad input yields an invalid index or an
// empty value.
type ItemModel interface {
	ColumnCount(parent domain.ModelIndex) int
	RowCount(parent domain.ModelIndex) int
	Index(row, column int, parent domain.ModelIndex) domain.ModelIndex
	Parent(index domain.ModelIndex) domain.ModelIndex
	Data(index domain.ModelIndex, role domain.Role) domain.Value
	HeaderData(section int, orientation domain.Orientation, role domain.Role) domain.Value
}

// Ensure VariantModel implements ItemModel
var _ ItemModel = (*domain.VariantModel)(nil)
