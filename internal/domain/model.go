package domain

import (
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoParent marks the root slot of the row table. It is never a valid offset.
const NoParent = -1

// IndexVector is the flattened row table: entry i holds the table offset of
// node i's parent. Slot 0 is always the document root.
type IndexVector []int

// Role selects what kind of data a cell query asks for
type Role int

const (
	RoleDisplay Role = iota
	RoleToolTip
	RoleEdit
)

// Orientation of a header section
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// ModelIndex addresses a cell of the model. The zero value is the invalid
// index, which stands for the root context.
type ModelIndex struct {
	row    int
	column int
	id     int
	valid  bool
}

func (i ModelIndex) Row() int { return i.row }
func (i ModelIndex) Column() int { return i.column }
func (i ModelIndex) InternalID() int { return i.id }
func (i ModelIndex) IsValid() bool { return i.valid }

// Sibling returns the index for another column of the same node
func (i ModelIndex) Sibling(column int) ModelIndex {
	if !i.valid || column < 0 || column > 1 {
		return ModelIndex{}
	}
	i.column = column
	return i
}

// ResetPhase is passed to reset observers around Reload
type ResetPhase int

const (
	ResetBegin ResetPhase = iota
	ResetEnd
)

// Option configures a VariantModel
type Option func(*VariantModel)

// WithLanguage selects the language of the header labels
func WithLanguage(tag language.Tag) Option {
	return func(m *VariantModel) {
		m.printer = headerPrinter(tag)
	}
}

// VariantModel exposes a document as a two-column (key, value) tree.
//
// The document is borrowed, never modified, and must stay unchanged between
// calls to Reload. Indices handed out before a Reload are stale afterwards.
// A VariantModel is meant for a single goroutine.
type VariantModel struct {
	doc       *Value
	rows      IndexVector
	printer   *message.Printer
	observers []func(ResetPhase)
}

// NewVariantModel creates a model over doc and flattens it immediately
func NewVariantModel(doc *Value, opts ...Option) *VariantModel {
	if doc == nil {
		doc = &Value{}
	}
	m := &VariantModel{
		doc:     doc,
		printer: headerPrinter(language.English),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Reload()
	return m
}

// OnReset registers fn to be called before and after every Reload
func (m *VariantModel) OnReset(fn func(ResetPhase)) {
	m.observers = append(m.observers, fn)
}

func (m *VariantModel) notify(phase ResetPhase) {
	for _, fn := range m.observers {
		fn(phase)
	}
}

// Reload rebuilds the row table from the document
func (m *VariantModel) Reload() {
	m.notify(ResetBegin)

	n := 0
	overallLength(*m.doc, &n, NoParent, nil)
	rows := make(IndexVector, 0, n)
	n = 0
	overallLength(*m.doc, &n, NoParent, &rows)
	m.rows = rows

	m.notify(ResetEnd)
}

// overallLength walks item in pre-order, counting nodes in c. When rows is
// non-nil it records the parent offset of every visited node.
func overallLength(item Value, c *int, parent int, rows *IndexVector) {
	if !item.IsValid() {
		return
	}
	if rows != nil {
		*rows = append(*rows, parent)
	}

	self := *c
	*c++
	for _, sub := range item.items {
		overallLength(sub, c, self, rows)
	}
}

// findNth returns the offset of the nth (zero-based) entry equal to value,
// or -1.
func findNth(rows IndexVector, value, n int) int {
	if n < 0 {
		return -1
	}
	for i, p := range rows {
		if p == value {
			if n == 0 {
				return i
			}
			n--
		}
	}
	return -1
}

func (m *VariantModel) createIndex(row, column, id int) ModelIndex {
	return ModelIndex{row: row, column: column, id: id, valid: true}
}

// scalarRoot reports whether the whole document is a single leaf, in which
// case the root shows up as one top-level row.
func (m *VariantModel) scalarRoot() bool {
	return m.doc.IsScalar()
}

// offsetOf returns the table offset a parent index refers to; anything
// invalid or out of range means the root.
func (m *VariantModel) offsetOf(parent ModelIndex) int {
	if parent.IsValid() && parent.id >= 0 && parent.id < len(m.rows) {
		return parent.id
	}
	return 0
}

// Document returns the borrowed document root
func (m *VariantModel) Document() *Value {
	return m.doc
}

// Len returns the number of entries in the row table
func (m *VariantModel) Len() int {
	return len(m.rows)
}

// Rows returns a copy of the row table
func (m *VariantModel) Rows() IndexVector {
	return slices.Clone(m.rows)
}

// ColumnCount is always 2: key and value
func (m *VariantModel) ColumnCount(ModelIndex) int {
	return 2
}

// RowCount returns the number of direct children of parent
func (m *VariantModel) RowCount(parent ModelIndex) int {
	if !parent.IsValid() && m.scalarRoot() {
		return 1
	}
	p := m.offsetOf(parent)
	n := 0
	for _, r := range m.rows {
		if r == p {
			n++
		}
	}
	return n
}

// Index returns the index of the row-th child of parent
func (m *VariantModel) Index(row, column int, parent ModelIndex) ModelIndex {
	if row < 0 || column < 0 || column > 1 {
		return ModelIndex{}
	}
	if !parent.IsValid() && m.scalarRoot() {
		if row == 0 {
			return m.createIndex(0, column, 0)
		}
		return ModelIndex{}
	}

	id := findNth(m.rows, m.offsetOf(parent), row)
	if id < 0 {
		return ModelIndex{}
	}
	return m.createIndex(row, column, id)
}

// Parent returns the index of the node containing index, or the invalid
// index when that is the root.
func (m *VariantModel) Parent(index ModelIndex) ModelIndex {
	if !index.IsValid() || index.id < 0 || index.id >= len(m.rows) {
		return ModelIndex{}
	}

	p := m.rows[index.id]
	if p <= 0 || p >= len(m.rows) {
		return ModelIndex{}
	}

	// The table only stores parent offsets, so the parent's own row is the
	// number of earlier entries sharing its parent.
	grandparent := m.rows[p]
	row := 0
	for i := 0; i < p; i++ {
		if m.rows[i] == grandparent {
			row++
		}
	}
	return m.createIndex(row, index.column, p)
}

// Data returns the contents of a cell. Only RoleDisplay is answered.
func (m *VariantModel) Data(index ModelIndex, role Role) Value {
	if role != RoleDisplay || !index.IsValid() {
		return Value{}
	}
	if index.column < 0 || index.column > 1 {
		return Value{}
	}
	if index.id < 0 || index.id >= len(m.rows) {
		return Value{}
	}

	thing := m.Underlying(m.Parent(index))
	switch thing.Kind() {
	case KindMap:
		key, ok := thing.KeyAt(index.row)
		if !ok {
			return Value{}
		}
		if index.column == 0 {
			return Scalar(key)
		}
		return thing.At(index.row)
	case KindList:
		if index.column == 0 {
			return Scalar(index.row)
		}
		return thing.At(index.row)
	case KindScalar:
		if index.column == 0 {
			return Value{}
		}
		return thing
	default:
		return Value{}
	}
}

// HeaderData returns the localized column titles
func (m *VariantModel) HeaderData(section int, orientation Orientation, role Role) Value {
	if role != RoleDisplay || orientation != Horizontal {
		return Value{}
	}
	switch section {
	case 0:
		return Scalar(m.printer.Sprintf(headerKey))
	case 1:
		return Scalar(m.printer.Sprintf(headerValue))
	default:
		return Value{}
	}
}

// Underlying returns the document node an index refers to. The invalid index
// resolves to the document root.
func (m *VariantModel) Underlying(index ModelIndex) Value {
	if !index.IsValid() {
		return *m.doc
	}
	if index.id < 0 || index.id >= len(m.rows) {
		return Value{}
	}

	thing := m.Underlying(m.Parent(index))
	switch thing.Kind() {
	case KindMap, KindList:
		return thing.At(index.row)
	default:
		return thing
	}
}

// Walk visits every node in pre-order with its column-0 index and depth.
// Returning false from fn stops the walk.
func (m *VariantModel) Walk(fn func(index ModelIndex, depth int) bool) {
	if m.scalarRoot() {
		fn(m.createIndex(0, 0, 0), 0)
		return
	}

	seen := make(map[int]int, len(m.rows))
	depth := make([]int, len(m.rows))
	for id := 1; id < len(m.rows); id++ {
		p := m.rows[id]
		if p > 0 {
			depth[id] = depth[p] + 1
		}
		row := seen[p]
		seen[p] = row + 1
		if !fn(m.createIndex(row, 0, id), depth[id]) {
			return
		}
	}
}

// Path returns the keys leading from the root to index
func (m *VariantModel) Path(index ModelIndex) []string {
	var path []string
	for index.IsValid() {
		if key := m.Data(index.Sibling(0), RoleDisplay); key.IsValid() {
			path = append(path, key.String())
		}
		index = m.Parent(index)
	}
	slices.Reverse(path)
	return path
}
