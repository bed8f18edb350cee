package graph

// DataKind classifies what a port carries: a primitive value, a structural or
// nominal type that needs a type name, or one of the sentinels (Execution,
// Any, Auto, Void, Unknown).
type DataKind uint8

const (
	KindVoid DataKind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindFloat
	KindDouble
	KindString
	KindStringView
	KindChar
	KindWChar
	KindPointer
	KindReference
	KindArray
	KindVector
	KindMap
	KindSet
	KindStruct
	KindClass
	KindEnum
	KindTemplate
	KindObject
	KindExecution
	KindAny
	KindAuto
	KindUnknown
)

var dataKindNames = map[DataKind]string{
	KindVoid:       "void",
	KindBool:       "bool",
	KindInt8:       "int8",
	KindInt16:      "int16",
	KindInt32:      "int32",
	KindInt64:      "int64",
	KindUInt8:      "uint8",
	KindUInt16:     "uint16",
	KindUInt32:     "uint32",
	KindUInt64:     "uint64",
	KindFloat:      "float",
	KindDouble:     "double",
	KindString:     "string",
	KindStringView: "string_view",
	KindChar:       "char",
	KindWChar:      "wchar",
	KindPointer:    "pointer",
	KindReference:  "reference",
	KindArray:      "array",
	KindVector:     "vector",
	KindMap:        "map",
	KindSet:        "set",
	KindStruct:     "struct",
	KindClass:      "class",
	KindEnum:       "enum",
	KindTemplate:   "template",
	KindObject:     "object",
	KindExecution:  "execution",
	KindAny:        "any",
	KindAuto:       "auto",
	KindUnknown:    "unknown",
}

var dataKindsByName = func() map[string]DataKind {
	m := make(map[string]DataKind, len(dataKindNames))
	for kind, name := range dataKindNames {
		m[name] = kind
	}
	return m
}()

func (k DataKind) String() string {
	if name, ok := dataKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseDataKind resolves a wire-format name back to its kind.
func ParseDataKind(name string) (DataKind, bool) {
	kind, ok := dataKindsByName[name]
	return kind, ok
}

// RequiresTypeName reports whether the kind carries structural/nominal detail
// in a type name. Setting a type name on any other kind is a usage error.
func (k DataKind) RequiresTypeName() bool {
	switch k {
	case KindPointer, KindReference, KindArray, KindVector, KindMap, KindSet,
		KindStruct, KindClass, KindEnum, KindTemplate:
		return true
	}
	return false
}

// AllowsWildcardTypeName reports whether the kind accepts a universal marker
// ("*", "any", ...) as its type name. Containers and nominal types must name
// a concrete element or identifier.
func (k DataKind) AllowsWildcardTypeName() bool {
	switch k {
	case KindPointer, KindReference, KindTemplate:
		return true
	}
	return false
}

func (k DataKind) isSignedIntegral() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
	return false
}

func (k DataKind) isUnsignedIntegral() bool {
	switch k {
	case KindUInt8, KindUInt16, KindUInt32, KindUInt64:
		return true
	}
	return false
}

func (k DataKind) isIntegral() bool {
	return k.isSignedIntegral() || k.isUnsignedIntegral() || k == KindBool || k == KindChar
}

func (k DataKind) isFloating() bool {
	return k == KindFloat || k == KindDouble
}

func (k DataKind) isNumeric() bool {
	return k.isIntegral() || k.isFloating()
}

func (k DataKind) isStringLike() bool {
	return k == KindString || k == KindStringView
}

func (k DataKind) isPointerLike() bool {
	return k == KindPointer || k == KindReference
}

func (k DataKind) isContainer() bool {
	switch k {
	case KindArray, KindVector, KindMap, KindSet:
		return true
	}
	return false
}

func (k DataKind) isNominal() bool {
	return k == KindStruct || k == KindClass || k == KindEnum
}

// widensTo reports one-directional lossless integral widening.
func (k DataKind) widensTo(to DataKind) bool {
	switch k {
	case KindInt8:
		return to == KindInt16 || to == KindInt32 || to == KindInt64
	case KindInt16:
		return to == KindInt32 || to == KindInt64
	case KindInt32:
		return to == KindInt64
	case KindUInt8:
		return to == KindUInt16 || to == KindUInt32 || to == KindUInt64
	case KindUInt16:
		return to == KindUInt32 || to == KindUInt64
	case KindUInt32:
		return to == KindUInt64
	}
	return false
}
