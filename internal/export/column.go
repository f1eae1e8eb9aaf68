package export

// ValueGenerator produces one column value per call. Implementations must be
// safe for concurrent use: the engine invokes them from parallel tasks with
// no synchronization.
type ValueGenerator interface {
	Value() (string, error)
}

// ValueFunc adapts a plain function to a ValueGenerator.
type ValueFunc func() (string, error)

func (f ValueFunc) Value() (string, error) { return f() }

// Column is one fixed-width field of a table. Size is advisory: it drives
// row-count arithmetic only and is never enforced against the length of
// generated values. SQLType is an opaque label carried into the schema.
type Column struct {
	name      string
	size      uint64
	sqlType   string
	generator ValueGenerator
}

func NewColumn(name string, size uint64, sqlType string, generator ValueGenerator) Column {
	return Column{
		name:      name,
		size:      size,
		sqlType:   sqlType,
		generator: generator,
	}
}

func (c Column) Name() string { return c.name }

func (c Column) Size() uint64 { return c.size }

func (c Column) SQLType() string { return c.sqlType }
