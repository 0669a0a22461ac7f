package commands

import (
	"context"
	"strings"

	"vartree/internal/domain"
	"vartree/internal/ports"
)

// RenderTreeCommand renders an item model as indented "key: value" lines.
// It only talks to the model through ports.ItemModel.
type RenderTreeCommand struct {
	model ports.ItemModel

	// Root is the index whose children are rendered; the invalid index
	// renders the whole document.
	Root domain.ModelIndex

	// MaxDepth limits nesting below Root; 0 means unlimited.
	MaxDepth int

	// Header prints the localized column titles first.
	Header bool

	// Indent is repeated once per level, two spaces by default.
	Indent string
}

// NewRenderTreeCommand creates a new RenderTreeCommand
func NewRenderTreeCommand(model ports.ItemModel) *RenderTreeCommand {
	return &RenderTreeCommand{model: model, Indent: "  "}
}

// Execute runs the render command
func (c *RenderTreeCommand) Execute(ctx context.Context) (string, error) {
	var b strings.Builder

	if c.Header {
		key := c.model.HeaderData(0, domain.Horizontal, domain.RoleDisplay)
		value := c.model.HeaderData(1, domain.Horizontal, domain.RoleDisplay)
		b.WriteString(key.String() + ": " + value.String() + "\n")
	}

	if err := c.render(ctx, &b, c.Root, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (c *RenderTreeCommand) render(ctx context.Context, b *strings.Builder, parent domain.ModelIndex, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := c.model.RowCount(parent)
	for row := 0; row < rows; row++ {
		index := c.model.Index(row, 0, parent)
		key := c.model.Data(index, domain.RoleDisplay)
		value := c.model.Data(c.model.Index(row, 1, parent), domain.RoleDisplay)

		b.WriteString(strings.Repeat(c.Indent, depth))
		if key.IsValid() {
			b.WriteString(key.String())
			b.WriteString(":")
		}

		if value.IsContainer() {
			if c.MaxDepth > 0 && depth+1 >= c.MaxDepth {
				b.WriteString(" " + value.String() + "\n")
				continue
			}
			if value.Len() == 0 {
				b.WriteString(" " + value.String() + "\n")
				continue
			}
			b.WriteString("\n")
			if err := c.render(ctx, b, index, depth+1); err != nil {
				return err
			}
			continue
		}

		if key.IsValid() {
			b.WriteString(" ")
		}
		b.WriteString(value.String() + "\n")
	}
	return nil
}
