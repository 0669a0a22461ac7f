package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"vartree/internal/domain"
)

// decodeYAML decodes a YAML stream. A stream with several documents
// becomes a list of documents.
func decodeYAML(data []byte) (domain.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []domain.Value
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Value{}, fmt.Errorf("decode yaml: %w", err)
		}
		v, err := fromNode(&node)
		if err != nil {
			return domain.Value{}, fmt.Errorf("decode yaml: %w", err)
		}
		docs = append(docs, v)
	}

	switch len(docs) {
	case 0:
		return domain.Value{}, nil
	case 1:
		return docs[0], nil
	default:
		return domain.List(docs...), nil
	}
}

func fromNode(n *yaml.Node) (domain.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return domain.Value{}, nil
		}
		return fromNode(n.Content[0])

	case yaml.AliasNode:
		return fromNode(n.Alias)

	case yaml.SequenceNode:
		items := make([]domain.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return domain.Value{}, err
			}
			items = append(items, v)
		}
		return domain.List(items...), nil

	case yaml.MappingNode:
		entries, err := mappingEntries(n)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.Map(entries...), nil

	case yaml.ScalarNode:
		var x any
		if err := n.Decode(&x); err != nil {
			return domain.Value{}, err
		}
		return domain.Scalar(x), nil

	default:
		return domain.Value{}, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

// mappingEntries flattens a mapping, applying "<<" merge keys first so that
// explicit keys override merged ones.
func mappingEntries(n *yaml.Node) ([]domain.Entry, error) {
	var merged, own []domain.Entry
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.Tag == "!!merge" {
			target := v
			if target.Kind == yaml.AliasNode {
				target = target.Alias
			}
			sources := []*yaml.Node{target}
			if target.Kind == yaml.SequenceNode {
				sources = target.Content
			}
			for _, src := range sources {
				if src.Kind == yaml.AliasNode {
					src = src.Alias
				}
				if src.Kind != yaml.MappingNode {
					return nil, fmt.Errorf("line %d: merge value is not a mapping", k.Line)
				}
				entries, err := mappingEntries(src)
				if err != nil {
					return nil, err
				}
				merged = append(merged, entries...)
			}
			continue
		}

		value, err := fromNode(v)
		if err != nil {
			return nil, err
		}
		own = append(own, domain.Entry{Key: k.Value, Value: value})
	}
	return append(merged, own...), nil
}
