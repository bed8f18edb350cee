package graph

// Well-known core node kinds. The factory's catalog defines their port
// templates; the validator and the code generators dispatch on these names.
const (
	KindNameStart       = "core.flow.start"
	KindNameEnd         = "core.flow.end"
	KindNameBranch      = "core.flow.branch"
	KindNameSequence    = "core.flow.sequence"
	KindNameForLoop     = "core.flow.for_loop"
	KindNamePrintString = "core.io.print_string"
	KindNameStringLit   = "core.literal.string"
	KindNameIntLit      = "core.literal.int"
	KindNameBoolLit     = "core.literal.bool"
	KindNameSetVariable = "core.variable.set"
	KindNameGetVariable = "core.variable.get"
	KindNameAdd         = "core.math.add"
)
