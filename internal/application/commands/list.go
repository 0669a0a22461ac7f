package commands

import (
	"context"

	"vartree/internal/application"
	"vartree/internal/domain"
)

// ListEntry is one child row of a node
type ListEntry struct {
	Index    domain.ModelIndex
	Key      domain.Value
	Value    domain.Value
	Children int
}

// ListChildrenCommand lists the direct children of the node at Path
type ListChildrenCommand struct {
	model *domain.VariantModel
	Path  string
}

// NewListChildrenCommand creates a new ListChildrenCommand
func NewListChildrenCommand(model *domain.VariantModel, path string) *ListChildrenCommand {
	return &ListChildrenCommand{
		model: model,
		Path:  path,
	}
}

// Execute runs the list children command
func (c *ListChildrenCommand) Execute(ctx context.Context) ([]ListEntry, error) {
	path, err := application.ParsePath(c.Path)
	if err != nil {
		return nil, err
	}

	parent, ok := c.model.Locate(path)
	if !ok {
		return nil, &application.LookupError{Path: path.String()}
	}

	rows := c.model.RowCount(parent)
	entries := make([]ListEntry, 0, rows)
	for row := 0; row < rows; row++ {
		index := c.model.Index(row, 0, parent)
		entries = append(entries, ListEntry{
			Index:    index,
			Key:      c.model.Data(index, domain.RoleDisplay),
			Value:    c.model.Data(index.Sibling(1), domain.RoleDisplay),
			Children: c.model.RowCount(index),
		})
	}
	return entries, nil
}
