package codegen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gyaneshwarpardhi/blueprint/internal/factory"
	"github.com/gyaneshwarpardhi/blueprint/internal/graph"
)

func makeNode(t *testing.T, f *factory.Factory, g *graph.Graph, kind string) *graph.Node {
	t.Helper()
	node, err := f.NewNode(kind, kind)
	if err != nil {
		t.Fatalf("NewNode(%s): %v", kind, err)
	}
	if _, err := g.AddNode(node); err != nil {
		t.Fatalf("AddNode(%s): %v", kind, err)
	}
	return node
}

func wire(t *testing.T, g *graph.Graph, from *graph.Node, fromPort string, to *graph.Node, toPort string) {
	t.Helper()
	fp := from.PortByName(fromPort, graph.DirOutput)
	tp := to.PortByName(toPort, graph.DirInput)
	if fp == nil || tp == nil {
		t.Fatalf("wire %s.%s -> %s.%s: port not found", from.Kind(), fromPort, to.Kind(), toPort)
	}
	if _, err := g.Connect(from.ID(), fp.ID(), to.ID(), tp.ID()); err != nil {
		t.Fatalf("Connect %s.%s -> %s.%s: %v", from.Kind(), fromPort, to.Kind(), toPort, err)
	}
}

func generate(t *testing.T, g *graph.Graph) string {
	t.Helper()
	src, err := (&CppGenerator{}).Generate(g)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return src
}

func TestGenerateHelloWorld(t *testing.T) {
	f := factory.New(factory.DefaultCatalog())
	g := graph.New("hello")

	start := makeNode(t, f, g, graph.KindNameStart)
	print := makeNode(t, f, g, graph.KindNamePrintString)
	end := makeNode(t, f, g, graph.KindNameEnd)
	lit := makeNode(t, f, g, graph.KindNameStringLit)
	lit.SetProperty("value", graph.StringValue("Hello, World!"))

	wire(t, g, start, "out_exec", print, "in_exec")
	wire(t, g, print, "out_exec", end, "in_exec")
	wire(t, g, lit, "value", print, "value")

	want := fmt.Sprintf(`// Generated by blueprint. Do not edit.
#include <cstdint>
#include <iostream>
#include <string>

int main() {
    const std::string var_%d = "Hello, World!";
    std::cout << var_%d << std::endl;
    return 0;
}
`, lit.ID(), lit.ID())
	if got := generate(t, g); got != want {
		t.Errorf("generated source mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestGenerateForLoop(t *testing.T) {
	f := factory.New(factory.DefaultCatalog())
	g := graph.New("loop")

	start := makeNode(t, f, g, graph.KindNameStart)
	loop := makeNode(t, f, g, graph.KindNameForLoop)
	print := makeNode(t, f, g, graph.KindNamePrintString)
	end := makeNode(t, f, g, graph.KindNameEnd)
	first := makeNode(t, f, g, graph.KindNameIntLit)
	first.SetProperty("value", graph.IntValue(1))
	last := makeNode(t, f, g, graph.KindNameIntLit)
	last.SetProperty("value", graph.IntValue(5))

	wire(t, g, start, "out_exec", loop, "in_exec")
	wire(t, g, first, "value", loop, "first_index")
	wire(t, g, last, "value", loop, "last_index")
	wire(t, g, loop, "loop_body", print, "in_exec")
	wire(t, g, loop, "index", print, "value")
	wire(t, g, loop, "completed", end, "in_exec")

	src := generate(t, g)
	loopVar := fmt.Sprintf("i_%d", loop.ID())

	for _, decl := range []string{
		fmt.Sprintf("const int64_t var_%d = 1;", first.ID()),
		fmt.Sprintf("const int64_t var_%d = 5;", last.ID()),
	} {
		if !strings.Contains(src, decl) {
			t.Errorf("missing hoisted bound %q in:\n%s", decl, src)
		}
	}
	header := fmt.Sprintf("for (int64_t %s = var_%d; %s < var_%d; ++%s) {",
		loopVar, first.ID(), loopVar, last.ID(), loopVar)
	if !strings.Contains(src, header) {
		t.Errorf("missing loop header %q in:\n%s", header, src)
	}
	body := fmt.Sprintf("std::cout << %s << std::endl;", loopVar)
	if !strings.Contains(src, body) {
		t.Errorf("loop body does not print the index variable:\n%s", src)
	}
	if strings.Index(src, header) > strings.Index(src, body) {
		t.Errorf("body emitted before loop header:\n%s", src)
	}
}

func TestGenerateBranch(t *testing.T) {
	f := factory.New(factory.DefaultCatalog())
	g := graph.New("branch")

	start := makeNode(t, f, g, graph.KindNameStart)
	branch := makeNode(t, f, g, graph.KindNameBranch)
	cond := makeNode(t, f, g, graph.KindNameBoolLit)
	cond.SetProperty("value", graph.BoolValue(true))
	yes := makeNode(t, f, g, graph.KindNamePrintString)
	no := makeNode(t, f, g, graph.KindNamePrintString)
	yesLit := makeNode(t, f, g, graph.KindNameStringLit)
	yesLit.SetProperty("value", graph.StringValue("yes"))
	noLit := makeNode(t, f, g, graph.KindNameStringLit)
	noLit.SetProperty("value", graph.StringValue("no"))

	wire(t, g, start, "out_exec", branch, "in_exec")
	wire(t, g, cond, "value", branch, "condition")
	wire(t, g, branch, "true_exec", yes, "in_exec")
	wire(t, g, branch, "false_exec", no, "in_exec")
	wire(t, g, yesLit, "value", yes, "value")
	wire(t, g, noLit, "value", no, "value")

	src := generate(t, g)
	for _, want := range []string{
		fmt.Sprintf("const bool var_%d = true;", cond.ID()),
		fmt.Sprintf(`const std::string var_%d = "yes";`, yesLit.ID()),
		fmt.Sprintf(`const std::string var_%d = "no";`, noLit.ID()),
		fmt.Sprintf("if (var_%d) {", cond.ID()),
		fmt.Sprintf("std::cout << var_%d << std::endl;", yesLit.ID()),
		"} else {",
		fmt.Sprintf("std::cout << var_%d << std::endl;", noLit.ID()),
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q in:\n%s", want, src)
		}
	}
}

// Both arms are emitted even when nothing is wired to the false path.
func TestGenerateBranchEmptyFalsePath(t *testing.T) {
	f := factory.New(factory.DefaultCatalog())
	g := graph.New("branch-one-arm")

	start := makeNode(t, f, g, graph.KindNameStart)
	branch := makeNode(t, f, g, graph.KindNameBranch)
	yes := makeNode(t, f, g, graph.KindNamePrintString)

	wire(t, g, start, "out_exec", branch, "in_exec")
	wire(t, g, branch, "true_exec", yes, "in_exec")

	src := generate(t, g)
	if !strings.Contains(src, "} else {") {
		t.Errorf("unwired false path dropped the else arm:\n%s", src)
	}
	if strings.Index(src, "} else {") > strings.LastIndex(src, "    }") {
		t.Errorf("else arm emitted after the closing brace:\n%s", src)
	}
}

// Sequence steps run in port-name order regardless of connection order.
func TestGenerateSequenceOrder(t *testing.T) {
	f := factory.New(factory.DefaultCatalog())
	g := graph.New("sequence")

	start := makeNode(t, f, g, graph.KindNameStart)
	seq := makeNode(t, f, g, graph.KindNameSequence)
	second := makeNode(t, f, g, graph.KindNamePrintString)
	first := makeNode(t, f, g, graph.KindNamePrintString)
	secondLit := makeNode(t, f, g, graph.KindNameStringLit)
	secondLit.SetProperty("value", graph.StringValue("second"))
	firstLit := makeNode(t, f, g, graph.KindNameStringLit)
	firstLit.SetProperty("value", graph.StringValue("first"))

	wire(t, g, start, "out_exec", seq, "in_exec")
	// Wire "Then 1" before "Then 0" on purpose.
	wire(t, g, seq, "Then 1", second, "in_exec")
	wire(t, g, seq, "Then 0", first, "in_exec")
	wire(t, g, secondLit, "value", second, "value")
	wire(t, g, firstLit, "value", first, "value")

	src := generate(t, g)
	firstUse := fmt.Sprintf("std::cout << var_%d", firstLit.ID())
	secondUse := fmt.Sprintf("std::cout << var_%d", secondLit.ID())
	if !strings.Contains(src, firstUse) || !strings.Contains(src, secondUse) {
		t.Fatalf("missing sequence steps in:\n%s", src)
	}
	if strings.Index(src, firstUse) > strings.Index(src, secondUse) {
		t.Errorf("sequence steps out of order:\n%s", src)
	}
}

// An expression wired into sinks in different scopes stays inline, so sharing
// it across a loop body and the code after the loop cannot leave a reference
// to a block-local name.
func TestGenerateSharedExpression(t *testing.T) {
	f := factory.New(factory.DefaultCatalog())
	g := graph.New("shared")

	start := makeNode(t, f, g, graph.KindNameStart)
	loop := makeNode(t, f, g, graph.KindNameForLoop)
	inner := makeNode(t, f, g, graph.KindNamePrintString)
	after := makeNode(t, f, g, graph.KindNamePrintString)
	add := makeNode(t, f, g, graph.KindNameAdd)
	a := makeNode(t, f, g, graph.KindNameIntLit)
	a.SetProperty("value", graph.IntValue(2))
	b := makeNode(t, f, g, graph.KindNameIntLit)
	b.SetProperty("value", graph.IntValue(3))

	wire(t, g, start, "out_exec", loop, "in_exec")
	wire(t, g, loop, "loop_body", inner, "in_exec")
	wire(t, g, loop, "completed", after, "in_exec")
	wire(t, g, a, "value", add, "a")
	wire(t, g, b, "value", add, "b")
	wire(t, g, add, "value", inner, "value")
	wire(t, g, add, "value", after, "value")

	src := generate(t, g)
	use := fmt.Sprintf("std::cout << (var_%d + var_%d) << std::endl;", a.ID(), b.ID())
	if got := strings.Count(src, use); got != 2 {
		t.Errorf("inline sum used %d times, want 2:\n%s", got, src)
	}
	if strings.Contains(src, fmt.Sprintf("var_%d", add.ID())) {
		t.Errorf("sum was declared as a named local:\n%s", src)
	}
	for _, decl := range []string{
		fmt.Sprintf("const int64_t var_%d = 2;", a.ID()),
		fmt.Sprintf("const int64_t var_%d = 3;", b.ID()),
	} {
		if got := strings.Count(src, decl); got != 1 {
			t.Errorf("operand declaration %q appears %d times, want 1:\n%s", decl, got, src)
		}
	}
}

func TestGenerateVariables(t *testing.T) {
	f := factory.New(factory.DefaultCatalog())
	g := graph.New("variables")
	if err := g.AddVariable("count", graph.KindInt64); err != nil {
		t.Fatalf("AddVariable: %v", err)
	}

	start := makeNode(t, f, g, graph.KindNameStart)
	set := makeNode(t, f, g, graph.KindNameSetVariable)
	set.SetProperty("name", graph.StringValue("count"))
	get := makeNode(t, f, g, graph.KindNameGetVariable)
	get.SetProperty("name", graph.StringValue("count"))
	print := makeNode(t, f, g, graph.KindNamePrintString)
	lit := makeNode(t, f, g, graph.KindNameIntLit)
	lit.SetProperty("value", graph.IntValue(7))

	wire(t, g, start, "out_exec", set, "in_exec")
	wire(t, g, lit, "value", set, "value")
	wire(t, g, set, "out_exec", print, "in_exec")
	wire(t, g, get, "value", print, "value")

	src := generate(t, g)
	for _, want := range []string{
		"int64_t count = 0;",
		fmt.Sprintf("const int64_t var_%d = 7;", lit.ID()),
		fmt.Sprintf("count = var_%d;", lit.ID()),
		"std::cout << count << std::endl;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q in:\n%s", want, src)
		}
	}
}

func TestGenerateUnconnectedInputsDefault(t *testing.T) {
	f := factory.New(factory.DefaultCatalog())
	g := graph.New("defaults")

	start := makeNode(t, f, g, graph.KindNameStart)
	print := makeNode(t, f, g, graph.KindNamePrintString)
	wire(t, g, start, "out_exec", print, "in_exec")

	src := generate(t, g)
	if !strings.Contains(src, `std::cout << "" << std::endl;`) {
		t.Errorf("unconnected string input did not default to empty literal:\n%s", src)
	}
}

func TestGenerateDepthLimit(t *testing.T) {
	f := factory.New(factory.DefaultCatalog())
	g := graph.New("cycle")

	start := makeNode(t, f, g, graph.KindNameStart)
	p1 := makeNode(t, f, g, graph.KindNamePrintString)
	p2 := makeNode(t, f, g, graph.KindNamePrintString)

	wire(t, g, start, "out_exec", p1, "in_exec")
	wire(t, g, p1, "out_exec", p2, "in_exec")
	wire(t, g, p2, "out_exec", p1, "in_exec")

	src := generate(t, g)
	if !strings.Contains(src, "depth limit") {
		t.Errorf("cyclic flow did not hit the depth guard:\n%s", src)
	}
}

func TestGenerateMissingStart(t *testing.T) {
	g := graph.New("empty")
	_, err := (&CppGenerator{}).Generate(g)
	if graph.CodeOf(err) != graph.CodeMissingStart {
		t.Fatalf("Generate err = %v, want code %d", err, graph.CodeMissingStart)
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	gen, err := r.Get("cpp")
	if err != nil || gen.Language() != "cpp" {
		t.Fatalf("Get(cpp) = %v, %v", gen, err)
	}
	if _, err := r.Get("cobol"); err == nil {
		t.Error("Get accepted an unknown language")
	}
	if langs := r.Languages(); len(langs) != 1 || langs[0] != "cpp" {
		t.Errorf("Languages() = %v", langs)
	}
}
