package tests

import (
	"strings"

	"github.com/tameorm/tame/clause"
)

// DummyDialector quotes with backticks and binds with `?`
type DummyDialector struct{}

func (DummyDialector) Name() string {
	return "dummy"
}

func (DummyDialector) QuoteTo(writer clause.Writer, str string) {
	writer.WriteByte('`')
	writer.WriteString(strings.ReplaceAll(str, "`", "``"))
	writer.WriteByte('`')
}

func (DummyDialector) BindVar(int) string {
	return "?"
}
