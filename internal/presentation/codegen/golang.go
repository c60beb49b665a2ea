package codegen

import (
	"fmt"
	"go/format"
	"go/token"
	"strings"
)

// generateGo writes a single Go file that builds with both Go and TinyGo.
func generateGo(md *model, pkg string) (string, error) {
	if pkg == "" {
		pkg = md.machine.flat()
		if token.IsKeyword(pkg) {
			pkg = "fsm"
		}
	} else if !token.IsIdentifier(pkg) {
		return "", fmt.Errorf("invalid package name %q", pkg)
	}

	typ := md.machine.pascal()
	names := md.machine.camel()
	stateType, inputType, outputType := typ+"State", typ+"Input", typ+"Output"

	var sb strings.Builder
	sb.WriteString("// Code generated by hexfsm. DO NOT EDIT.\n")
	fmt.Fprintf(&sb, "// %s\n\n", md.header())
	fmt.Fprintf(&sb, "package %s\n\n", pkg)

	goEnum(&sb, stateType, names+"StateNames", "state", md.states)
	goEnum(&sb, inputType, names+"InputNames", "input", md.inputs)
	if md.hasOutputs() {
		goEnum(&sb, outputType, names+"OutputNames", "output", md.outputs)
	}

	fmt.Fprintf(&sb, "// %s is a generated state machine.\n", typ)
	fmt.Fprintf(&sb, "type %s struct {\n", typ)
	if md.hasOutputs() {
		fmt.Fprintf(&sb, "\tstate     %s\n", stateType)
		fmt.Fprintf(&sb, "\toutput    %s\n", outputType)
		sb.WriteString("\thasOutput bool\n")
	} else {
		fmt.Fprintf(&sb, "\tstate %s\n", stateType)
	}
	sb.WriteString("}\n\n")

	initial := md.states[md.initial]
	fmt.Fprintf(&sb, "// New%s returns a machine in its initial state.\n", typ)
	fmt.Fprintf(&sb, "func New%s() *%s {\n", typ, typ)
	if out := md.stateOut[md.initial]; out >= 0 {
		fmt.Fprintf(&sb, "\treturn &%s{state: %s%s, output: %s%s, hasOutput: true}\n",
			typ, stateType, initial.pascal, outputType, md.outputs[out].pascal)
	} else {
		fmt.Fprintf(&sb, "\treturn &%s{state: %s%s}\n", typ, stateType, initial.pascal)
	}
	sb.WriteString("}\n\n")

	sb.WriteString("// State returns the current state.\n")
	fmt.Fprintf(&sb, "func (m *%s) State() %s {\n", typ, stateType)
	sb.WriteString("\treturn m.state\n")
	sb.WriteString("}\n\n")

	if md.hasOutputs() {
		sb.WriteString("// Output returns the output of the last move, if it produced one.\n")
		fmt.Fprintf(&sb, "func (m *%s) Output() (%s, bool) {\n", typ, outputType)
		sb.WriteString("\treturn m.output, m.hasOutput\n")
		sb.WriteString("}\n\n")
	}

	sb.WriteString("// Step consumes input and reports whether a transition fired.\n")
	fmt.Fprintf(&sb, "func (m *%s) Step(input %s) bool {\n", typ, inputType)
	sb.WriteString("\tswitch m.state {\n")
	for from, arcs := range md.arcs {
		if len(arcs) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\tcase %s%s:\n", stateType, md.states[from].pascal)
		sb.WriteString("\t\tswitch input {\n")
		for _, a := range arcs {
			fmt.Fprintf(&sb, "\t\tcase %s%s:\n", inputType, md.inputs[a.input].pascal)
			fmt.Fprintf(&sb, "\t\t\tm.state = %s%s\n", stateType, md.states[a.to].pascal)
			if md.hasOutputs() {
				if a.output >= 0 {
					fmt.Fprintf(&sb, "\t\t\tm.output = %s%s\n", outputType, md.outputs[a.output].pascal)
					sb.WriteString("\t\t\tm.hasOutput = true\n")
				} else {
					sb.WriteString("\t\t\tm.hasOutput = false\n")
				}
			}
			sb.WriteString("\t\t\treturn true\n")
		}
		sb.WriteString("\t\t}\n")
	}
	sb.WriteString("\t}\n")
	sb.WriteString("\treturn false\n")
	sb.WriteString("}\n\n")

	sb.WriteString("// CanStep reports whether input has a transition from the current state.\n")
	fmt.Fprintf(&sb, "func (m *%s) CanStep(input %s) bool {\n", typ, inputType)
	sb.WriteString("\tswitch m.state {\n")
	for from, arcs := range md.arcs {
		if len(arcs) == 0 {
			continue
		}
		conds := make([]string, len(arcs))
		for i, a := range arcs {
			conds[i] = "input == " + inputType + md.inputs[a.input].pascal
		}
		fmt.Fprintf(&sb, "\tcase %s%s:\n", stateType, md.states[from].pascal)
		fmt.Fprintf(&sb, "\t\treturn %s\n", strings.Join(conds, " || "))
	}
	sb.WriteString("\t}\n")
	sb.WriteString("\treturn false\n")
	sb.WriteString("}\n\n")

	sb.WriteString("// IsAccepting reports whether the current state is accepting.\n")
	fmt.Fprintf(&sb, "func (m *%s) IsAccepting() bool {\n", typ)
	if len(md.accepting) == 0 {
		sb.WriteString("\treturn false\n")
	} else {
		conds := make([]string, len(md.accepting))
		for i, s := range md.accepting {
			conds[i] = "m.state == " + stateType + md.states[s].pascal
		}
		fmt.Fprintf(&sb, "\treturn %s\n", strings.Join(conds, " || "))
	}
	sb.WriteString("}\n\n")

	sb.WriteString("// Reset returns the machine to its initial state.\n")
	fmt.Fprintf(&sb, "func (m *%s) Reset() {\n", typ)
	fmt.Fprintf(&sb, "\t*m = *New%s()\n", typ)
	sb.WriteString("}\n")

	src, err := format.Source([]byte(sb.String()))
	if err != nil {
		return "", fmt.Errorf("format generated go: %w", err)
	}
	return string(src), nil
}

// goEnum writes a uint16 enum with its name table and String method.
func goEnum(sb *strings.Builder, typ, table, what string, syms []symbol) {
	fmt.Fprintf(sb, "// %s enumerates the %ss of the machine.\n", typ, what)
	fmt.Fprintf(sb, "type %s uint16\n\n", typ)

	if len(syms) > 0 {
		sb.WriteString("const (\n")
		for i, s := range syms {
			if i == 0 {
				fmt.Fprintf(sb, "\t%s%s %s = iota\n", typ, s.pascal, typ)
			} else {
				fmt.Fprintf(sb, "\t%s%s\n", typ, s.pascal)
			}
		}
		sb.WriteString(")\n\n")
	}

	fmt.Fprintf(sb, "var %s = [...]string{", table)
	if len(syms) > 0 {
		sb.WriteString("\n")
		for _, s := range syms {
			fmt.Fprintf(sb, "\t%q,\n", s.name)
		}
	}
	sb.WriteString("}\n\n")

	recv := what[:1]
	fmt.Fprintf(sb, "func (%s %s) String() string {\n", recv, typ)
	fmt.Fprintf(sb, "\tif int(%s) < len(%s) {\n", recv, table)
	fmt.Fprintf(sb, "\t\treturn %s[%s]\n", table, recv)
	sb.WriteString("\t}\n")
	sb.WriteString("\treturn \"unknown\"\n")
	sb.WriteString("}\n\n")
}
