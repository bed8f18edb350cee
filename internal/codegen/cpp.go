package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gyaneshwarpardhi/blueprint/internal/graph"
	"github.com/gyaneshwarpardhi/blueprint/internal/ids"
)

// maxWalkDepth bounds both the execution walk and data expression recursion,
// so a cyclic or pathologically deep graph degrades to a placeholder comment
// instead of blowing the stack.
const maxWalkDepth = 200

// CppGenerator renders a graph as a single C++ translation unit with one
// main function. The only hard failure is a graph without a Start node;
// everything else degrades to placeholder comments in the output.
type CppGenerator struct{}

func (*CppGenerator) Language() string { return "cpp" }

func (*CppGenerator) Generate(g *graph.Graph) (string, error) {
	var start *graph.Node
	for _, node := range g.Nodes() {
		if node.Kind() == graph.KindNameStart {
			start = node
			break
		}
	}
	if start == nil {
		return "", graph.Errorf(graph.CodeMissingStart, "graph %q has no Start node", g.Name())
	}

	e := &cppEmitter{
		graph:  g,
		exprs:  make(map[ids.PortID]string),
		indent: 1,
	}
	e.declareVariables()
	e.emitFlow(start, 0)

	body := e.body.String()

	var out strings.Builder
	out.WriteString("// Generated by blueprint. Do not edit.\n")
	out.WriteString("#include <cstdint>\n")
	out.WriteString("#include <iostream>\n")
	out.WriteString("#include <string>\n\n")
	out.WriteString("int main() {\n")
	out.WriteString(e.preamble.String())
	out.WriteString(body)
	if !strings.Contains(body, "return 0;") {
		out.WriteString("    return 0;\n")
	}
	out.WriteString("}\n")
	return out.String(), nil
}

type cppEmitter struct {
	graph    *graph.Graph
	preamble strings.Builder
	body     strings.Builder
	indent   int

	// exprs memoizes the rendered expression per source output port, so a
	// value wired into several sinks is computed once.
	exprs map[ids.PortID]string
}

func (e *cppEmitter) line(format string, args ...any) {
	e.body.WriteString(strings.Repeat("    ", e.indent))
	fmt.Fprintf(&e.body, format, args...)
	e.body.WriteByte('\n')
}

// preline writes a declaration into the preamble, ahead of the statement body.
func (e *cppEmitter) preline(format string, args ...any) {
	e.preamble.WriteString("    ")
	fmt.Fprintf(&e.preamble, format, args...)
	e.preamble.WriteByte('\n')
}

func (e *cppEmitter) declareVariables() {
	for _, v := range e.graph.Variables() {
		e.preline("%s;", cppDeclaration(v.Name, v.Kind))
	}
}

// emitFlow renders the statement(s) for node, then follows its execution
// outputs.
func (e *cppEmitter) emitFlow(node *graph.Node, depth int) {
	if node == nil {
		return
	}
	if depth > maxWalkDepth {
		e.line("// flow truncated: depth limit reached at node %d", node.ID())
		return
	}

	switch node.Kind() {
	case graph.KindNameStart:
		e.emitFlow(e.execTarget(node, "out_exec"), depth+1)

	case graph.KindNameEnd:
		e.line("return 0;")

	case graph.KindNamePrintString:
		e.line("std::cout << %s << std::endl;", e.inputExpr(node, "value", depth))
		e.emitFlow(e.execTarget(node, "out_exec"), depth+1)

	case graph.KindNameBranch:
		cond := e.inputExpr(node, "condition", depth)
		e.line("if (%s) {", cond)
		e.indent++
		e.emitFlow(e.execTarget(node, "true_exec"), depth+1)
		e.indent--
		e.line("} else {")
		e.indent++
		e.emitFlow(e.execTarget(node, "false_exec"), depth+1)
		e.indent--
		e.line("}")

	case graph.KindNameSequence:
		// Port names order the steps: "Then 0" before "Then 1".
		outs := append([]*graph.Port(nil), node.ExecOutputs()...)
		sort.Slice(outs, func(i, j int) bool { return outs[i].Name() < outs[j].Name() })
		for _, p := range outs {
			e.emitFlow(e.execTarget(node, p.Name()), depth+1)
		}

	case graph.KindNameForLoop:
		loopVar := fmt.Sprintf("i_%d", node.ID())
		if index := node.PortByName("index", graph.DirOutput); index != nil {
			e.exprs[index.ID()] = loopVar
		}
		first := e.inputExpr(node, "first_index", depth)
		last := e.inputExpr(node, "last_index", depth)
		e.line("for (int64_t %s = %s; %s < %s; ++%s) {", loopVar, first, loopVar, last, loopVar)
		e.indent++
		e.emitFlow(e.execTarget(node, "loop_body"), depth+1)
		e.indent--
		e.line("}")
		e.emitFlow(e.execTarget(node, "completed"), depth+1)

	case graph.KindNameSetVariable:
		name, _ := node.StringProperty("name")
		if name == "" {
			e.line("// set variable node %d has no variable name", node.ID())
		} else {
			e.line("%s = %s;", name, e.inputExpr(node, "value", depth))
		}
		e.emitFlow(e.execTarget(node, "out_exec"), depth+1)

	default:
		e.line("// node %d: no emitter for kind %q", node.ID(), node.Kind())
		e.emitFlow(e.execTarget(node, "out_exec"), depth+1)
	}
}

// execTarget resolves the node the named execution output is wired to, or nil.
func (e *cppEmitter) execTarget(node *graph.Node, portName string) *graph.Node {
	port := node.PortByName(portName, graph.DirOutput)
	if port == nil {
		return nil
	}
	for _, cid := range e.graph.ConnectionsFrom(node.ID()) {
		conn := e.graph.Connection(cid)
		if conn != nil && conn.Kind == graph.ConnExecution && conn.FromPort == port.ID() {
			return e.graph.Node(conn.ToNode)
		}
	}
	return nil
}

// inputExpr renders the expression feeding the named input port. Unconnected
// inputs fall back to the port kind's zero literal.
func (e *cppEmitter) inputExpr(node *graph.Node, portName string, depth int) string {
	port := node.PortByName(portName, graph.DirInput)
	if port == nil {
		return "0"
	}
	for _, cid := range e.graph.ConnectionsTo(node.ID()) {
		conn := e.graph.Connection(cid)
		if conn == nil || conn.Kind != graph.ConnData || conn.ToPort != port.ID() {
			continue
		}
		src := e.graph.Node(conn.FromNode)
		if src == nil {
			break
		}
		srcPort := src.FindPort(conn.FromPort)
		if srcPort == nil {
			break
		}
		return e.outputExpr(src, srcPort, depth)
	}
	return zeroLiteral(port.Kind())
}

// outputExpr renders (and memoizes) the expression produced by an output
// port. Literal values are hoisted into named constants in the preamble so
// shared sinks reuse one definition regardless of which scope first asks.
func (e *cppEmitter) outputExpr(node *graph.Node, port *graph.Port, depth int) string {
	if expr, ok := e.exprs[port.ID()]; ok {
		return expr
	}
	if depth > maxWalkDepth {
		return "0 /* depth limit */"
	}

	var expr string
	switch node.Kind() {
	case graph.KindNameStringLit:
		s, _ := node.StringProperty("value")
		local := fmt.Sprintf("var_%d", node.ID())
		e.preline("const std::string %s = %s;", local, strconv.Quote(s))
		expr = local

	case graph.KindNameIntLit:
		v, _ := node.IntProperty("value")
		local := fmt.Sprintf("var_%d", node.ID())
		e.preline("const int64_t %s = %s;", local, strconv.FormatInt(v, 10))
		expr = local

	case graph.KindNameBoolLit:
		b, _ := node.BoolProperty("value")
		local := fmt.Sprintf("var_%d", node.ID())
		e.preline("const bool %s = %s;", local, strconv.FormatBool(b))
		expr = local

	case graph.KindNameGetVariable:
		name, _ := node.StringProperty("name")
		if name == "" {
			expr = "0"
		} else {
			expr = name
		}

	case graph.KindNameAdd:
		a := e.inputExpr(node, "a", depth+1)
		b := e.inputExpr(node, "b", depth+1)
		expr = fmt.Sprintf("(%s + %s)", a, b)

	default:
		expr = zeroLiteral(port.Kind())
	}

	e.exprs[port.ID()] = expr
	return expr
}

func zeroLiteral(kind graph.DataKind) string {
	switch {
	case kind == graph.KindString || kind == graph.KindStringView:
		return `""`
	case kind == graph.KindBool:
		return "false"
	case kind == graph.KindFloat || kind == graph.KindDouble:
		return "0.0"
	default:
		return "0"
	}
}

func cppDeclaration(name string, kind graph.DataKind) string {
	switch kind {
	case graph.KindBool:
		return "bool " + name + " = false"
	case graph.KindInt8:
		return "int8_t " + name + " = 0"
	case graph.KindInt16:
		return "int16_t " + name + " = 0"
	case graph.KindInt32:
		return "int32_t " + name + " = 0"
	case graph.KindUInt8:
		return "uint8_t " + name + " = 0"
	case graph.KindUInt16:
		return "uint16_t " + name + " = 0"
	case graph.KindUInt32:
		return "uint32_t " + name + " = 0"
	case graph.KindUInt64:
		return "uint64_t " + name + " = 0"
	case graph.KindFloat:
		return "float " + name + " = 0.0f"
	case graph.KindDouble:
		return "double " + name + " = 0.0"
	case graph.KindString, graph.KindStringView:
		return "std::string " + name
	default:
		return "int64_t " + name + " = 0"
	}
}
