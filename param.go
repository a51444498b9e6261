package simplequery

import (
	"database/sql"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ParamType is the storage hint used when binding a value.
type ParamType int

const (
	// ParamString binds the value as text.
	ParamString ParamType = iota
	// ParamInt binds numeric and boolean values as numbers.
	ParamInt
)

func (t ParamType) String() string {
	if t == ParamInt {
		return "int"
	}
	return "string"
}

// Param is a named value bound to a placeholder.
type Param struct {
	Name  string
	Value any
	Type  ParamType
}

func newParam(name string, value any) Param {
	return Param{Name: name, Value: value, Type: inferType(value)}
}

// inferType returns ParamInt for booleans, Go numeric kinds and numeric
// strings, ParamString for everything else.
func inferType(v any) ParamType {
	switch val := v.(type) {
	case nil:
		return ParamString
	case bool:
		return ParamInt
	case string:
		if isNumeric(val) {
			return ParamInt
		}
		return ParamString
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool:
		return ParamInt
	}
	return ParamString
}

func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	unsigned := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return false
	}
	// ParseFloat also accepts NaN and Inf spellings.
	lower := strings.ToLower(s)
	return !strings.Contains(lower, "nan") && !strings.Contains(lower, "inf")
}

// Arg returns the value handed to the driver. Numeric hints are normalised:
// booleans become 0/1, integers and integral numeric strings int64, other
// numbers float64. String hints pass the value through unchanged.
func (p Param) Arg() any {
	if p.Type != ParamInt {
		return p.Value
	}
	if v, ok := p.Value.(string); ok {
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return v
	}
	rv := reflect.ValueOf(p.Value)
	switch rv.Kind() {
	case reflect.Bool:
		return cast.ToInt64(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		// Values above MaxInt64 are left for the driver to reject.
		if u := rv.Uint(); u <= math.MaxInt64 {
			return int64(u)
		}
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return p.Value
}

// NamedArg returns the parameter as a sql.NamedArg.
func (p Param) NamedArg() sql.NamedArg {
	return sql.Named(p.Name, p.Arg())
}

// paramNames hands out placeholder names unique within one statement.
type paramNames map[string]int

// take derives a placeholder name from column and reserves it. Characters not
// allowed in a bind name are replaced by '_'; a name already taken gets a
// numeric suffix (num, num_2, num_3...).
func (n paramNames) take(column string) string {
	base := sanitizeParamName(column)
	n[base]++
	if n[base] == 1 {
		return base
	}
	for {
		name := base + "_" + strconv.Itoa(n[base])
		if _, used := n[name]; !used {
			n[name] = 1
			return name
		}
		n[base]++
	}
}

func sanitizeParamName(column string) string {
	var b strings.Builder
	b.Grow(len(column))
	for i, r := range column {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteString("p_")
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "p"
	}
	return b.String()
}
