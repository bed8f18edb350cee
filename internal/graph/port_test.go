package graph

import (
	"testing"

	"github.com/gyaneshwarpardhi/blueprint/internal/ids"
)

func makePort(t *testing.T, id ids.PortID, dir Direction, kind DataKind, typeName string) *Port {
	t.Helper()
	p := NewPort(id, dir, kind, "p")
	if typeName != "" {
		if err := p.SetTypeName(typeName); err != nil {
			t.Fatalf("SetTypeName(%q) on %s port: %v", typeName, kind, err)
		}
	}
	return &p
}

func TestCanConnectTo(t *testing.T) {
	tests := []struct {
		name string
		from *Port
		to   *Port
		want bool
	}{
		{
			name: "execution to execution",
			from: makePort(t, 1, DirOutput, KindExecution, ""),
			to:   makePort(t, 2, DirInput, KindExecution, ""),
			want: true,
		},
		{
			name: "execution to data",
			from: makePort(t, 1, DirOutput, KindExecution, ""),
			to:   makePort(t, 2, DirInput, KindInt32, ""),
			want: false,
		},
		{
			name: "data to execution",
			from: makePort(t, 1, DirOutput, KindInt32, ""),
			to:   makePort(t, 2, DirInput, KindExecution, ""),
			want: false,
		},
		{
			name: "same port id",
			from: makePort(t, 7, DirOutput, KindInt32, ""),
			to:   makePort(t, 7, DirInput, KindInt32, ""),
			want: false,
		},
		{
			name: "output to output",
			from: makePort(t, 1, DirOutput, KindInt32, ""),
			to:   makePort(t, 2, DirOutput, KindInt32, ""),
			want: false,
		},
		{
			name: "int32 widens to int64",
			from: makePort(t, 1, DirOutput, KindInt32, ""),
			to:   makePort(t, 2, DirInput, KindInt64, ""),
			want: true,
		},
		{
			name: "int64 does not narrow to int32",
			from: makePort(t, 1, DirOutput, KindInt64, ""),
			to:   makePort(t, 2, DirInput, KindInt32, ""),
			want: false,
		},
		{
			name: "uint8 widens to uint64",
			from: makePort(t, 1, DirOutput, KindUInt8, ""),
			to:   makePort(t, 2, DirInput, KindUInt64, ""),
			want: true,
		},
		{
			name: "integral to floating",
			from: makePort(t, 1, DirOutput, KindInt32, ""),
			to:   makePort(t, 2, DirInput, KindFloat, ""),
			want: true,
		},
		{
			name: "double to float",
			from: makePort(t, 1, DirOutput, KindDouble, ""),
			to:   makePort(t, 2, DirInput, KindFloat, ""),
			want: true,
		},
		{
			name: "any matches vector",
			from: makePort(t, 1, DirOutput, KindAny, ""),
			to:   makePort(t, 2, DirInput, KindVector, "int"),
			want: true,
		},
		{
			name: "auto matches struct",
			from: makePort(t, 1, DirOutput, KindStruct, "Point"),
			to:   makePort(t, 2, DirInput, KindAuto, ""),
			want: true,
		},
		{
			name: "void pairs only with void",
			from: makePort(t, 1, DirOutput, KindVoid, ""),
			to:   makePort(t, 2, DirInput, KindVoid, ""),
			want: true,
		},
		{
			name: "void rejects int32",
			from: makePort(t, 1, DirOutput, KindVoid, ""),
			to:   makePort(t, 2, DirInput, KindInt32, ""),
			want: false,
		},
		{
			name: "string to string_view",
			from: makePort(t, 1, DirOutput, KindString, ""),
			to:   makePort(t, 2, DirInput, KindStringView, ""),
			want: true,
		},
		{
			name: "int32 stringifies into string sink",
			from: makePort(t, 1, DirOutput, KindInt32, ""),
			to:   makePort(t, 2, DirInput, KindString, ""),
			want: true,
		},
		{
			name: "vector stringifies into string sink",
			from: makePort(t, 1, DirOutput, KindVector, "int"),
			to:   makePort(t, 2, DirInput, KindString, ""),
			want: true,
		},
		{
			name: "string does not convert to int32",
			from: makePort(t, 1, DirOutput, KindString, ""),
			to:   makePort(t, 2, DirInput, KindInt32, ""),
			want: false,
		},
		{
			name: "numeric to bool",
			from: makePort(t, 1, DirOutput, KindInt32, ""),
			to:   makePort(t, 2, DirInput, KindBool, ""),
			want: true,
		},
		{
			name: "bool does not convert to int32",
			from: makePort(t, 1, DirOutput, KindBool, ""),
			to:   makePort(t, 2, DirInput, KindInt32, ""),
			want: false,
		},
		{
			name: "matching vectors in different formatting",
			from: makePort(t, 1, DirOutput, KindVector, "std::String"),
			to:   makePort(t, 2, DirInput, KindVector, " STD::string "),
			want: true,
		},
		{
			name: "vector element mismatch",
			from: makePort(t, 1, DirOutput, KindVector, "int"),
			to:   makePort(t, 2, DirInput, KindVector, "float"),
			want: false,
		},
		{
			name: "pointer to reference with same pointee",
			from: makePort(t, 1, DirOutput, KindPointer, "Widget"),
			to:   makePort(t, 2, DirInput, KindReference, "widget"),
			want: true,
		},
		{
			name: "pointer to reference with different pointee",
			from: makePort(t, 1, DirOutput, KindPointer, "Widget"),
			to:   makePort(t, 2, DirInput, KindReference, "Gadget"),
			want: false,
		},
		{
			name: "wildcard pointer matches any pointee",
			from: makePort(t, 1, DirOutput, KindPointer, "*"),
			to:   makePort(t, 2, DirInput, KindPointer, "Widget"),
			want: true,
		},
		{
			name: "template placeholders match by name",
			from: makePort(t, 1, DirOutput, KindTemplate, "T"),
			to:   makePort(t, 2, DirInput, KindTemplate, "t"),
			want: true,
		},
		{
			// An untyped port has an empty type name, which is a wildcard
			// against the placeholder.
			name: "unconstrained int32 matches template",
			from: makePort(t, 1, DirOutput, KindInt32, ""),
			to:   makePort(t, 2, DirInput, KindTemplate, "T"),
			want: true,
		},
		{
			name: "struct names case folded",
			from: makePort(t, 1, DirOutput, KindStruct, "Point"),
			to:   makePort(t, 2, DirInput, KindStruct, "POINT"),
			want: true,
		},
		{
			name: "struct name mismatch",
			from: makePort(t, 1, DirOutput, KindStruct, "Point"),
			to:   makePort(t, 2, DirInput, KindStruct, "Rect"),
			want: false,
		},
		{
			name: "inout pairs with input",
			from: makePort(t, 1, DirInOut, KindInt32, ""),
			to:   makePort(t, 2, DirInput, KindInt32, ""),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanConnectTo(tt.to); got != tt.want {
				t.Errorf("CanConnectTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetTypeName(t *testing.T) {
	t.Run("primitive kind rejects type name", func(t *testing.T) {
		p := NewPort(1, DirInput, KindInt32, "value")
		err := p.SetTypeName("int")
		if CodeOf(err) != CodeInvalidTypeName {
			t.Fatalf("err = %v, want code %d", err, CodeInvalidTypeName)
		}
	})

	t.Run("container rejects universal marker", func(t *testing.T) {
		p := NewPort(1, DirInput, KindVector, "items")
		for _, marker := range []string{"*", "any", "VOID", "auto"} {
			if err := p.SetTypeName(marker); CodeOf(err) != CodeInvalidTypeName {
				t.Errorf("SetTypeName(%q) = %v, want code %d", marker, err, CodeInvalidTypeName)
			}
		}
	})

	t.Run("pointer accepts universal marker", func(t *testing.T) {
		p := NewPort(1, DirInput, KindPointer, "target")
		if err := p.SetTypeName("*"); err != nil {
			t.Fatalf("SetTypeName(*) = %v", err)
		}
	})

	t.Run("stored name is normalized", func(t *testing.T) {
		p := NewPort(1, DirInput, KindMap, "lookup")
		if err := p.SetTypeName("Map< Value=Vector<int> , Key=STD::String >"); err != nil {
			t.Fatalf("SetTypeName: %v", err)
		}
		want := "map<key=std::string, value=vector<int>>"
		if p.TypeName() != want {
			t.Errorf("TypeName() = %q, want %q", p.TypeName(), want)
		}
	})

	t.Run("empty clears", func(t *testing.T) {
		p := NewPort(1, DirInput, KindVector, "items")
		if err := p.SetTypeName("int"); err != nil {
			t.Fatalf("SetTypeName: %v", err)
		}
		if err := p.SetTypeName("   "); err != nil {
			t.Fatalf("SetTypeName(blank): %v", err)
		}
		if p.TypeName() != "" {
			t.Errorf("TypeName() = %q, want empty", p.TypeName())
		}
	})
}

func TestParseDirection(t *testing.T) {
	for _, dir := range []Direction{DirInput, DirOutput, DirInOut} {
		parsed, ok := ParseDirection(dir.String())
		if !ok || parsed != dir {
			t.Errorf("ParseDirection(%q) = %v, %v", dir.String(), parsed, ok)
		}
	}
	if _, ok := ParseDirection("Sideways"); ok {
		t.Error("ParseDirection accepted an unknown direction")
	}
}
