package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Path is a sequence of keys (map keys or list positions) from the root
type Path []string

// Grammar for path expressions: .servers[0].name, servers.0.name, ["a b"].c

type pathExpr struct {
	Head  *string     `parser:"@(Ident | String)?"`
	Steps []*pathStep `parser:"@@*"`
}

type pathStep struct {
	Field   *string `parser:"  '.' @(Ident | String)"`
	Bracket *string `parser:"| '[' @(Ident | String) ']'"`
}

var pathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
	{Name: "Ident", Pattern: `[^.\[\]"\s]+`},
	{Name: "Punct", Pattern: `[.\[\]]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var pathParser = participle.MustBuild[pathExpr](
	participle.Lexer(pathLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace"),
)

// ParsePath parses a path expression. "" and "." denote the root.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." {
		return Path{}, nil
	}

	expr, err := pathParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", s, err)
	}

	var path Path
	if expr.Head != nil {
		path = append(path, *expr.Head)
	}
	for _, step := range expr.Steps {
		switch {
		case step.Field != nil:
			path = append(path, *step.Field)
		case step.Bracket != nil:
			path = append(path, *step.Bracket)
		}
	}
	return path, nil
}

var plainKey = regexp.MustCompile(`^[^.\[\]"\s]+$`)

// String formats the path so that ParsePath reads it back
func (p Path) String() string {
	if len(p) == 0 {
		return "."
	}
	var b strings.Builder
	for _, seg := range p {
		if plainKey.MatchString(seg) {
			b.WriteByte('.')
			b.WriteString(seg)
		} else {
			b.WriteByte('[')
			b.WriteString(strconv.Quote(seg))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Locate finds the index addressed by path. The empty path is the root,
// reported as the invalid index.
func (m *VariantModel) Locate(path Path) (ModelIndex, bool) {
	var index ModelIndex
	for _, seg := range path {
		next, ok := m.child(index, seg)
		if !ok {
			return ModelIndex{}, false
		}
		index = next
	}
	return index, true
}

func (m *VariantModel) child(parent ModelIndex, key string) (ModelIndex, bool) {
	container := m.Underlying(parent)
	row := -1
	switch container.Kind() {
	case KindMap:
		i := sort.SearchStrings(container.keys, key)
		if i < len(container.keys) && container.keys[i] == key {
			row = i
		}
	case KindList:
		n, err := strconv.Atoi(key)
		if err == nil && n >= 0 && n < container.Len() {
			row = n
		}
	}
	if row < 0 {
		return ModelIndex{}, false
	}

	index := m.Index(row, 0, parent)
	return index, index.IsValid()
}
