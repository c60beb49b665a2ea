package domain

// Capacity limits imposed by the 16-bit record fields.
const (
	// MaxStates is the number of state ids addressable by a record field.
	MaxStates = 0xFFFF

	// MaxInputs excludes 0xFFFF, which is reserved for epsilon.
	MaxInputs = 0xFFFE

	// MaxOutputs is the number of output ids addressable by a record field.
	MaxOutputs = 0xFFFF
)

// Category names a symbol table of a Machine.
type Category string

const (
	CategoryState  Category = "state"
	CategoryInput  Category = "input"
	CategoryOutput Category = "output"
)
