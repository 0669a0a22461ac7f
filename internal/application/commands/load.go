package commands

import (
	"context"
	"fmt"

	"vartree/internal/domain"
	"vartree/internal/logger"
	"vartree/internal/ports"
)

// LoadModelResult contains the model built over a freshly loaded document
type LoadModelResult struct {
	Model   *domain.VariantModel
	Source  string
	Message string
}

// LoadModelCommand loads a document and builds a VariantModel over it
type LoadModelCommand struct {
	source   ports.DocumentSource
	Language string
}

// NewLoadModelCommand creates a new LoadModelCommand
func NewLoadModelCommand(source ports.DocumentSource, language string) *LoadModelCommand {
	return &LoadModelCommand{
		source:   source,
		Language: language,
	}
}

// Execute runs the load model command
func (c *LoadModelCommand) Execute(ctx context.Context) (*LoadModelResult, error) {
	doc, err := c.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	model := domain.NewVariantModel(&doc, domain.WithLanguage(domain.ParseLanguage(c.Language)))

	logger.Info("loaded document", "source", c.source.Describe(), "rows", model.Len())
	return &LoadModelResult{
		Model:   model,
		Source:  c.source.Describe(),
		Message: fmt.Sprintf("Loaded %s (%d nodes)", c.source.Describe(), model.Len()),
	}, nil
}

// ReloadCommand reads the source again and rebuilds an existing model in
// place, so views holding the model see the new document.
type ReloadCommand struct {
	source ports.DocumentSource
	model  *domain.VariantModel
}

// NewReloadCommand creates a new ReloadCommand
func NewReloadCommand(source ports.DocumentSource, model *domain.VariantModel) *ReloadCommand {
	return &ReloadCommand{
		source: source,
		model:  model,
	}
}

// Execute runs the reload command. On failure the model keeps the old document.
func (c *ReloadCommand) Execute(ctx context.Context) (*LoadModelResult, error) {
	doc, err := c.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	*c.model.Document() = doc
	c.model.Reload()

	logger.Info("reloaded document", "source", c.source.Describe(), "rows", c.model.Len())
	return &LoadModelResult{
		Model:   c.model,
		Source:  c.source.Describe(),
		Message: fmt.Sprintf("Reloaded %s (%d nodes)", c.source.Describe(), c.model.Len()),
	}, nil
}
