package graph

// PropertyKind discriminates the property value union.
type PropertyKind uint8

const (
	PropString PropertyKind = iota
	PropFloat
	PropInt
	PropBool
)

// PropertyValue is a tagged union of string/float64/int64/bool. Node
// properties carry literal values and configuration that are not wired
// through a data port. The typed accessors return false on kind mismatch
// instead of coercing.
type PropertyValue struct {
	kind PropertyKind
	s    string
	f    float64
	i    int64
	b    bool
}

func StringValue(v string) PropertyValue { return PropertyValue{kind: PropString, s: v} }
func FloatValue(v float64) PropertyValue { return PropertyValue{kind: PropFloat, f: v} }
func IntValue(v int64) PropertyValue     { return PropertyValue{kind: PropInt, i: v} }
func BoolValue(v bool) PropertyValue     { return PropertyValue{kind: PropBool, b: v} }

func (v PropertyValue) Kind() PropertyKind { return v.kind }

func (v PropertyValue) AsString() (string, bool) {
	if v.kind != PropString {
		return "", false
	}
	return v.s, true
}

func (v PropertyValue) AsFloat() (float64, bool) {
	if v.kind != PropFloat {
		return 0, false
	}
	return v.f, true
}

func (v PropertyValue) AsInt() (int64, bool) {
	if v.kind != PropInt {
		return 0, false
	}
	return v.i, true
}

func (v PropertyValue) AsBool() (bool, bool) {
	if v.kind != PropBool {
		return false, false
	}
	return v.b, true
}
