package codegen

import (
	"fmt"
	"strings"
)

// generateC writes a single-header C99 library. Declarations are always visible;
// definitions are compiled where <PREFIX>_IMPLEMENTATION is defined before inclusion.
func generateC(md *model) string {
	fn := md.machine.snake()
	macro := md.machine.upper()
	guard := macro + "_FSM_H"

	var sb strings.Builder
	sb.WriteString("/* Code generated by hexfsm. DO NOT EDIT. */\n")
	fmt.Fprintf(&sb, "/* %s */\n\n", cComment(md.header()))
	fmt.Fprintf(&sb, "#ifndef %s\n", guard)
	fmt.Fprintf(&sb, "#define %s\n\n", guard)
	sb.WriteString("#include <stdbool.h>\n")
	sb.WriteString("#include <stdint.h>\n\n")

	fmt.Fprintf(&sb, "typedef uint16_t %s_state_t;\n", fn)
	fmt.Fprintf(&sb, "typedef uint16_t %s_input_t;\n", fn)
	if md.hasOutputs() {
		fmt.Fprintf(&sb, "typedef uint16_t %s_output_t;\n", fn)
	}
	sb.WriteString("\n")

	cDefines(&sb, macro+"_STATE_", md.states)
	cDefines(&sb, macro+"_INPUT_", md.inputs)
	if md.hasOutputs() {
		cDefines(&sb, macro+"_OUTPUT_", md.outputs)
	}

	sb.WriteString("typedef struct {\n")
	fmt.Fprintf(&sb, "    %s_state_t state;\n", fn)
	if md.hasOutputs() {
		fmt.Fprintf(&sb, "    %s_output_t output;\n", fn)
		sb.WriteString("    bool has_output;\n")
	}
	fmt.Fprintf(&sb, "} %s_t;\n\n", fn)

	fmt.Fprintf(&sb, "void %s_init(%s_t *fsm);\n", fn, fn)
	fmt.Fprintf(&sb, "bool %s_step(%s_t *fsm, %s_input_t input);\n", fn, fn, fn)
	fmt.Fprintf(&sb, "bool %s_can_step(const %s_t *fsm, %s_input_t input);\n", fn, fn, fn)
	fmt.Fprintf(&sb, "bool %s_is_accepting(const %s_t *fsm);\n", fn, fn)
	fmt.Fprintf(&sb, "const char *%s_state_name(%s_state_t state);\n", fn, fn)
	fmt.Fprintf(&sb, "const char *%s_input_name(%s_input_t input);\n", fn, fn)
	if md.hasOutputs() {
		fmt.Fprintf(&sb, "const char *%s_output_name(%s_output_t output);\n", fn, fn)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "#ifdef %s_IMPLEMENTATION\n\n", macro)

	fmt.Fprintf(&sb, "void %s_init(%s_t *fsm) {\n", fn, fn)
	fmt.Fprintf(&sb, "    fsm->state = %s_STATE_%s;\n", macro, md.states[md.initial].upper)
	if md.hasOutputs() {
		if out := md.stateOut[md.initial]; out >= 0 {
			fmt.Fprintf(&sb, "    fsm->output = %s_OUTPUT_%s;\n", macro, md.outputs[out].upper)
			sb.WriteString("    fsm->has_output = true;\n")
		} else {
			sb.WriteString("    fsm->output = 0;\n")
			sb.WriteString("    fsm->has_output = false;\n")
		}
	}
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "bool %s_step(%s_t *fsm, %s_input_t input) {\n", fn, fn, fn)
	if !md.hasArcs() {
		sb.WriteString("    (void)fsm;\n")
		sb.WriteString("    (void)input;\n")
	} else {
		sb.WriteString("    switch (fsm->state) {\n")
		for from, arcs := range md.arcs {
			if len(arcs) == 0 {
				continue
			}
			fmt.Fprintf(&sb, "    case %s_STATE_%s:\n", macro, md.states[from].upper)
			sb.WriteString("        switch (input) {\n")
			for _, a := range arcs {
				fmt.Fprintf(&sb, "        case %s_INPUT_%s:\n", macro, md.inputs[a.input].upper)
				fmt.Fprintf(&sb, "            fsm->state = %s_STATE_%s;\n", macro, md.states[a.to].upper)
				if md.hasOutputs() {
					if a.output >= 0 {
						fmt.Fprintf(&sb, "            fsm->output = %s_OUTPUT_%s;\n", macro, md.outputs[a.output].upper)
						sb.WriteString("            fsm->has_output = true;\n")
					} else {
						sb.WriteString("            fsm->has_output = false;\n")
					}
				}
				sb.WriteString("            return true;\n")
			}
			sb.WriteString("        }\n")
			sb.WriteString("        break;\n")
		}
		sb.WriteString("    }\n")
	}
	sb.WriteString("    return false;\n")
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "bool %s_can_step(const %s_t *fsm, %s_input_t input) {\n", fn, fn, fn)
	if !md.hasArcs() {
		sb.WriteString("    (void)fsm;\n")
		sb.WriteString("    (void)input;\n")
	} else {
		sb.WriteString("    switch (fsm->state) {\n")
		for from, arcs := range md.arcs {
			if len(arcs) == 0 {
				continue
			}
			conds := make([]string, len(arcs))
			for i, a := range arcs {
				conds[i] = fmt.Sprintf("input == %s_INPUT_%s", macro, md.inputs[a.input].upper)
			}
			fmt.Fprintf(&sb, "    case %s_STATE_%s:\n", macro, md.states[from].upper)
			fmt.Fprintf(&sb, "        return %s;\n", strings.Join(conds, " || "))
		}
		sb.WriteString("    }\n")
	}
	sb.WriteString("    return false;\n")
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "bool %s_is_accepting(const %s_t *fsm) {\n", fn, fn)
	if len(md.accepting) == 0 {
		sb.WriteString("    (void)fsm;\n")
		sb.WriteString("    return false;\n")
	} else {
		conds := make([]string, len(md.accepting))
		for i, s := range md.accepting {
			conds[i] = fmt.Sprintf("fsm->state == %s_STATE_%s", macro, md.states[s].upper)
		}
		fmt.Fprintf(&sb, "    return %s;\n", strings.Join(conds, " || "))
	}
	sb.WriteString("}\n\n")

	cNameFunc(&sb, fn, macro, "state", md.states)
	cNameFunc(&sb, fn, macro, "input", md.inputs)
	if md.hasOutputs() {
		cNameFunc(&sb, fn, macro, "output", md.outputs)
	}

	fmt.Fprintf(&sb, "#endif /* %s_IMPLEMENTATION */\n\n", macro)
	fmt.Fprintf(&sb, "#endif /* %s */\n", guard)
	return sb.String()
}

func cDefines(sb *strings.Builder, prefix string, syms []symbol) {
	for i, s := range syms {
		fmt.Fprintf(sb, "#define %s%s %d\n", prefix, s.upper, i)
	}
	fmt.Fprintf(sb, "#define %sCOUNT %d\n\n", prefix, len(syms))
}

// cNameFunc writes the lookup from an id back to its source name.
// Zero-length arrays are not valid C, so an empty category only returns "unknown".
func cNameFunc(sb *strings.Builder, fn, macro, what string, syms []symbol) {
	fmt.Fprintf(sb, "const char *%s_%s_name(%s_%s_t %s) {\n", fn, what, fn, what, what)
	if len(syms) == 0 {
		fmt.Fprintf(sb, "    (void)%s;\n", what)
		sb.WriteString("    return \"unknown\";\n")
		sb.WriteString("}\n\n")
		return
	}

	fmt.Fprintf(sb, "    static const char *const names[%s_%s_COUNT] = {\n", macro, strings.ToUpper(what))
	for _, s := range syms {
		fmt.Fprintf(sb, "        %s,\n", cString(s.name))
	}
	sb.WriteString("    };\n")
	fmt.Fprintf(sb, "    return %s < %s_%s_COUNT ? names[%s] : \"unknown\";\n", what, macro, strings.ToUpper(what), what)
	sb.WriteString("}\n\n")
}

// cString quotes s as a C string literal. Bytes outside printable ASCII use
// three-digit octal escapes, which never absorb a following character.
func cString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch b := s[i]; {
		case b == '"' || b == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(b)
		case b < 0x20 || b >= 0x7f:
			fmt.Fprintf(&sb, "\\%03o", b)
		default:
			sb.WriteByte(b)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func cComment(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}
