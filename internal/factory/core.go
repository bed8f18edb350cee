package factory

import "github.com/gyaneshwarpardhi/blueprint/internal/graph"

// DefaultCatalog returns a catalog holding the built-in core kinds.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	registerCore(c)
	return c
}

func registerCore(c *Catalog) {
	execIn := PortTemplate{Name: "in_exec", Direction: graph.DirInput, Kind: graph.KindExecution}
	execOut := PortTemplate{Name: "out_exec", Direction: graph.DirOutput, Kind: graph.KindExecution}

	c.Register(KindSpec{
		Name:        graph.KindNameStart,
		DisplayName: "Start",
		Description: "Entry point of the program",
		Category:    "Flow",
		Ports:       []PortTemplate{execOut},
	})

	c.Register(KindSpec{
		Name:        graph.KindNameEnd,
		DisplayName: "End",
		Description: "Terminates the program",
		Category:    "Flow",
		Ports:       []PortTemplate{execIn},
	})

	c.Register(KindSpec{
		Name:        graph.KindNameBranch,
		DisplayName: "Branch",
		Description: "Routes execution on a boolean condition",
		Category:    "Flow",
		Ports: []PortTemplate{
			execIn,
			{Name: "condition", Direction: graph.DirInput, Kind: graph.KindBool},
			{Name: "true_exec", Direction: graph.DirOutput, Kind: graph.KindExecution},
			{Name: "false_exec", Direction: graph.DirOutput, Kind: graph.KindExecution},
		},
	})

	c.Register(KindSpec{
		Name:        graph.KindNameSequence,
		DisplayName: "Sequence",
		Description: "Runs its outputs one after another",
		Category:    "Flow",
		Ports: []PortTemplate{
			execIn,
			{Name: "Then 0", Direction: graph.DirOutput, Kind: graph.KindExecution},
			{Name: "Then 1", Direction: graph.DirOutput, Kind: graph.KindExecution},
		},
	})

	c.Register(KindSpec{
		Name:        graph.KindNameForLoop,
		DisplayName: "For Loop",
		Description: "Runs the body once per index in a half-open range",
		Category:    "Flow",
		Ports: []PortTemplate{
			execIn,
			{Name: "first_index", Direction: graph.DirInput, Kind: graph.KindInt64},
			{Name: "last_index", Direction: graph.DirInput, Kind: graph.KindInt64},
			{Name: "loop_body", Direction: graph.DirOutput, Kind: graph.KindExecution},
			{Name: "index", Direction: graph.DirOutput, Kind: graph.KindInt64},
			{Name: "completed", Direction: graph.DirOutput, Kind: graph.KindExecution},
		},
	})

	c.Register(KindSpec{
		Name:        graph.KindNamePrintString,
		DisplayName: "Print String",
		Description: "Writes a line to standard output",
		Category:    "IO",
		Ports: []PortTemplate{
			execIn,
			{Name: "value", Direction: graph.DirInput, Kind: graph.KindString},
			execOut,
		},
	})

	c.Register(KindSpec{
		Name:        graph.KindNameStringLit,
		DisplayName: "String",
		Description: "Constant string value",
		Category:    "Literal",
		Ports: []PortTemplate{
			{Name: "value", Direction: graph.DirOutput, Kind: graph.KindString},
		},
		Properties: []PropertyTemplate{
			{Key: "value", Default: graph.StringValue("")},
		},
	})

	c.Register(KindSpec{
		Name:        graph.KindNameIntLit,
		DisplayName: "Integer",
		Description: "Constant integer value",
		Category:    "Literal",
		Ports: []PortTemplate{
			{Name: "value", Direction: graph.DirOutput, Kind: graph.KindInt64},
		},
		Properties: []PropertyTemplate{
			{Key: "value", Default: graph.IntValue(0)},
		},
	})

	c.Register(KindSpec{
		Name:        graph.KindNameBoolLit,
		DisplayName: "Boolean",
		Description: "Constant boolean value",
		Category:    "Literal",
		Ports: []PortTemplate{
			{Name: "value", Direction: graph.DirOutput, Kind: graph.KindBool},
		},
		Properties: []PropertyTemplate{
			{Key: "value", Default: graph.BoolValue(false)},
		},
	})

	c.Register(KindSpec{
		Name:        graph.KindNameSetVariable,
		DisplayName: "Set Variable",
		Description: "Assigns a graph variable",
		Category:    "Variable",
		Ports: []PortTemplate{
			execIn,
			{Name: "value", Direction: graph.DirInput, Kind: graph.KindAny},
			execOut,
		},
		Properties: []PropertyTemplate{
			{Key: "name", Default: graph.StringValue("")},
		},
	})

	c.Register(KindSpec{
		Name:        graph.KindNameGetVariable,
		DisplayName: "Get Variable",
		Description: "Reads a graph variable",
		Category:    "Variable",
		Ports: []PortTemplate{
			{Name: "value", Direction: graph.DirOutput, Kind: graph.KindAny},
		},
		Properties: []PropertyTemplate{
			{Key: "name", Default: graph.StringValue("")},
		},
	})

	c.Register(KindSpec{
		Name:        graph.KindNameAdd,
		DisplayName: "Add",
		Description: "Sums two integers",
		Category:    "Math",
		Ports: []PortTemplate{
			{Name: "a", Direction: graph.DirInput, Kind: graph.KindInt64},
			{Name: "b", Direction: graph.DirInput, Kind: graph.KindInt64},
			{Name: "value", Direction: graph.DirOutput, Kind: graph.KindInt64},
		},
	})
}
