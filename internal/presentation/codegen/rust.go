package codegen

import (
	"fmt"
	"strings"
)

// generateRust writes a no_std-friendly Rust module: one enum per symbol category
// and a machine struct stepping on (state, input) matches.
func generateRust(md *model) string {
	typ := md.machine.pascal()
	stateType, inputType, outputType := typ+"State", typ+"Input", typ+"Output"

	var sb strings.Builder
	sb.WriteString("// Code generated by hexfsm. DO NOT EDIT.\n")
	fmt.Fprintf(&sb, "// %s\n\n", md.header())

	rustEnum(&sb, stateType, md.states)
	rustEnum(&sb, inputType, md.inputs)
	if md.hasOutputs() {
		rustEnum(&sb, outputType, md.outputs)
	}

	sb.WriteString("#[derive(Debug, Clone, Copy, PartialEq, Eq)]\n")
	fmt.Fprintf(&sb, "pub struct %s {\n", typ)
	fmt.Fprintf(&sb, "    state: %s,\n", stateType)
	if md.hasOutputs() {
		fmt.Fprintf(&sb, "    output: Option<%s>,\n", outputType)
	}
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "impl %s {\n", typ)

	sb.WriteString("    pub fn new() -> Self {\n")
	sb.WriteString("        Self {\n")
	fmt.Fprintf(&sb, "            state: %s::%s,\n", stateType, md.states[md.initial].pascal)
	if md.hasOutputs() {
		fmt.Fprintf(&sb, "            output: %s,\n", rustOutput(outputType, md.outputs, md.stateOut[md.initial]))
	}
	sb.WriteString("        }\n")
	sb.WriteString("    }\n\n")

	fmt.Fprintf(&sb, "    pub fn state(&self) -> %s {\n", stateType)
	sb.WriteString("        self.state\n")
	sb.WriteString("    }\n\n")

	if md.hasOutputs() {
		fmt.Fprintf(&sb, "    pub fn output(&self) -> Option<%s> {\n", outputType)
		sb.WriteString("        self.output\n")
		sb.WriteString("    }\n\n")
	}

	fmt.Fprintf(&sb, "    pub fn step(&mut self, input: %s) -> bool {\n", inputType)
	if !md.hasArcs() {
		sb.WriteString("        let _ = input;\n")
		sb.WriteString("        false\n")
	} else {
		sb.WriteString("        match (self.state, input) {\n")
		for from, arcs := range md.arcs {
			for _, a := range arcs {
				fmt.Fprintf(&sb, "            (%s::%s, %s::%s) => {\n",
					stateType, md.states[from].pascal, inputType, md.inputs[a.input].pascal)
				fmt.Fprintf(&sb, "                self.state = %s::%s;\n", stateType, md.states[a.to].pascal)
				if md.hasOutputs() {
					fmt.Fprintf(&sb, "                self.output = %s;\n", rustOutput(outputType, md.outputs, a.output))
				}
				sb.WriteString("            }\n")
			}
		}
		sb.WriteString("            _ => return false,\n")
		sb.WriteString("        }\n")
		sb.WriteString("        true\n")
	}
	sb.WriteString("    }\n\n")

	fmt.Fprintf(&sb, "    pub fn can_step(&self, input: %s) -> bool {\n", inputType)
	if !md.hasArcs() {
		sb.WriteString("        let _ = input;\n")
		sb.WriteString("        false\n")
	} else {
		var pairs []string
		for from, arcs := range md.arcs {
			for _, a := range arcs {
				pairs = append(pairs, fmt.Sprintf("(%s::%s, %s::%s)",
					stateType, md.states[from].pascal, inputType, md.inputs[a.input].pascal))
			}
		}
		sb.WriteString("        matches!(\n")
		sb.WriteString("            (self.state, input),\n")
		fmt.Fprintf(&sb, "            %s\n", strings.Join(pairs, "\n                | "))
		sb.WriteString("        )\n")
	}
	sb.WriteString("    }\n\n")

	sb.WriteString("    pub fn is_accepting(&self) -> bool {\n")
	if len(md.accepting) == 0 {
		sb.WriteString("        false\n")
	} else {
		variants := make([]string, len(md.accepting))
		for i, s := range md.accepting {
			variants[i] = stateType + "::" + md.states[s].pascal
		}
		fmt.Fprintf(&sb, "        matches!(self.state, %s)\n", strings.Join(variants, " | "))
	}
	sb.WriteString("    }\n\n")

	sb.WriteString("    pub fn reset(&mut self) {\n")
	sb.WriteString("        *self = Self::new();\n")
	sb.WriteString("    }\n")
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "impl Default for %s {\n", typ)
	sb.WriteString("    fn default() -> Self {\n")
	sb.WriteString("        Self::new()\n")
	sb.WriteString("    }\n")
	sb.WriteString("}\n")
	return sb.String()
}

// rustEnum writes a fieldless enum with a name() lookup. repr(u16) is rejected on
// enums without variants, so it is only added when there are some.
func rustEnum(sb *strings.Builder, typ string, syms []symbol) {
	sb.WriteString("#[derive(Debug, Clone, Copy, PartialEq, Eq, Hash)]\n")
	if len(syms) > 0 {
		sb.WriteString("#[repr(u16)]\n")
	}
	fmt.Fprintf(sb, "pub enum %s {\n", typ)
	for i, s := range syms {
		fmt.Fprintf(sb, "    %s = %d,\n", s.pascal, i)
	}
	sb.WriteString("}\n\n")

	fmt.Fprintf(sb, "impl %s {\n", typ)
	sb.WriteString("    pub fn name(self) -> &'static str {\n")
	sb.WriteString("        match self {\n")
	for _, s := range syms {
		fmt.Fprintf(sb, "            %s::%s => %s,\n", typ, s.pascal, rustString(s.name))
	}
	sb.WriteString("        }\n")
	sb.WriteString("    }\n")
	sb.WriteString("}\n\n")
}

func rustOutput(typ string, outputs []symbol, out int) string {
	if out < 0 {
		return "None"
	}
	return fmt.Sprintf("Some(%s::%s)", typ, outputs[out].pascal)
}

// rustString quotes s as a Rust string literal.
func rustString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString("\\n")
		case r == '\t':
			sb.WriteString("\\t")
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, "\\u{%x}", r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
