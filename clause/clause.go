package clause

// Interface clause interface
type Interface interface {
	Name() string
	Build(Builder)
}

// Builder builder interface
type Builder interface {
	Write(sql ...string)
	WriteByte(byte) error
	WriteQuoted(field interface{})
	AddVar(vars ...interface{}) string
}

// Dialect decides how identifiers are quoted and how bind variables are
// written for a database
type Dialect interface {
	Name() string
	QuoteTo(builder Writer, name string)
	BindVar(idx int) string
}

// Writer minimal string writer used by dialects when quoting
type Writer interface {
	WriteByte(byte) error
	WriteString(string) (int, error)
}
