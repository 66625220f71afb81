package schema

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Namer namer interface
type Namer interface {
	TableName(model string) string
	ColumnName(field string) string
	KeyFieldName(field string) string
	RelatedName(table string, kind FieldKind) string
	JoinTableName(source, target string) string
	JoinKeyName(table string) string
	RelationshipFKName(table, column string) string
	IndexName(table, column string) string
}

// NamingStrategy tables, columns naming strategy. The zero value names tables
// after the snake cased model name and backward relations `<table>s`.
type NamingStrategy struct {
	TablePrefix string
	// PluralTable pluralize table names with inflection rules
	PluralTable bool
	// InflectRelatedNames pluralize default backward relation names with
	// inflection rules instead of appending `s`
	InflectRelatedNames bool
}

// TableName convert model name to table name
func (ns NamingStrategy) TableName(str string) string {
	if ns.PluralTable {
		return ns.TablePrefix + inflection.Plural(toDBName(str))
	}
	return ns.TablePrefix + toDBName(str)
}

// ColumnName convert field name to column name
func (ns NamingStrategy) ColumnName(str string) string {
	return toDBName(str)
}

// KeyFieldName name of the key field synthesized for a forward relation
func (ns NamingStrategy) KeyFieldName(field string) string {
	return field + "_id"
}

// RelatedName default backward relation name for relations declared on table
func (ns NamingStrategy) RelatedName(table string, kind FieldKind) string {
	if kind == OneToOneField {
		return table
	}
	if ns.InflectRelatedNames {
		return inflection.Plural(table)
	}
	return table + "s"
}

// JoinTableName default through table of a many to many relation
func (ns NamingStrategy) JoinTableName(source, target string) string {
	return source + "_" + target
}

// JoinKeyName default key column of table in a through table
func (ns NamingStrategy) JoinKeyName(table string) string {
	return table + "_id"
}

// RelationshipFKName generate fk name for relation
func (ns NamingStrategy) RelationshipFKName(table, column string) string {
	return ns.truncate(fmt.Sprintf("fk_%s_%s", table, column))
}

// IndexName generate index name
func (ns NamingStrategy) IndexName(table, column string) string {
	return ns.truncate(fmt.Sprintf("idx_%v_%v", table, toDBName(column)))
}

func (ns NamingStrategy) truncate(name string) string {
	if utf8.RuneCountInString(name) > 64 {
		h := sha1.New()
		h.Write([]byte(name))
		bs := h.Sum(nil)

		name = name[0:56] + hex.EncodeToString(bs)[:8]
	}
	return name
}

var (
	smap sync.Map
	// https://github.com/golang/lint/blob/master/lint.go#L770
	commonInitialisms         = []string{"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XSRF", "XSS"}
	commonInitialismsReplacer *strings.Replacer
)

func init() {
	title := cases.Title(language.Und)
	var commonInitialismsForReplacer []string
	for _, initialism := range commonInitialisms {
		commonInitialismsForReplacer = append(commonInitialismsForReplacer, initialism, title.String(initialism))
	}
	commonInitialismsReplacer = strings.NewReplacer(commonInitialismsForReplacer...)
}

// ToDBName convert a Go name to its snake cased column name
func ToDBName(name string) string {
	return toDBName(name)
}

func toDBName(name string) string {
	if name == "" {
		return ""
	} else if v, ok := smap.Load(name); ok {
		return v.(string)
	}

	var (
		value                          = commonInitialismsReplacer.Replace(name)
		buf                            strings.Builder
		lastCase, nextCase, nextNumber bool // upper case == true
		curCase                        = value[0] <= 'Z' && value[0] >= 'A'
	)

	for i, v := range value[:len(value)-1] {
		nextCase = value[i+1] <= 'Z' && value[i+1] >= 'A'
		nextNumber = value[i+1] >= '0' && value[i+1] <= '9'

		if curCase {
			if lastCase && (nextCase || nextNumber) {
				buf.WriteRune(v + 32)
			} else {
				if i > 0 && value[i-1] != '_' && value[i+1] != '_' {
					buf.WriteByte('_')
				}
				buf.WriteRune(v + 32)
			}
		} else {
			buf.WriteRune(v)
		}

		lastCase = curCase
		curCase = nextCase
	}

	if curCase {
		if !lastCase && len(value) > 1 {
			buf.WriteByte('_')
		}
		buf.WriteByte(value[len(value)-1] + 32)
	} else {
		buf.WriteByte(value[len(value)-1])
	}

	result := buf.String()
	smap.Store(name, result)
	return result
}
