package commands

import (
	"context"

	"vartree/internal/application"
	"vartree/internal/domain"
)

// LookupResult describes the node a path resolved to
type LookupResult struct {
	Path     domain.Path
	Index    domain.ModelIndex
	Key      domain.Value
	Value    domain.Value
	Children int
}

// LookupCommand resolves a path expression against a model
type LookupCommand struct {
	model *domain.VariantModel
	Path  string
}

// NewLookupCommand creates a new LookupCommand
func NewLookupCommand(model *domain.VariantModel, path string) *LookupCommand {
	return &LookupCommand{
		model: model,
		Path:  path,
	}
}

// Execute runs the lookup command. The root path yields the whole document
// with an invalid index and no key.
func (c *LookupCommand) Execute(ctx context.Context) (*LookupResult, error) {
	path, err := application.ParsePath(c.Path)
	if err != nil {
		return nil, err
	}

	index, ok := c.model.Locate(path)
	if !ok {
		return nil, &application.LookupError{Path: path.String()}
	}

	result := &LookupResult{
		Path:     path,
		Index:    index,
		Value:    c.model.Underlying(index),
		Children: c.model.RowCount(index),
	}
	if index.IsValid() {
		result.Key = c.model.Data(index.Sibling(0), domain.RoleDisplay)
	}
	return result, nil
}
