package vm

// Op is a bytecode instruction opcode. Instructions are 1, 2, or 3 bytes:
// the opcode byte followed by zero, one, or two operand bytes.
type Op byte

const (
	OpConstant Op = iota // 2 bytes: index into Chunk.Constants
	OpNull
	OpTrue
	OpFalse
	OpPop

	OpGetLocal  // 2 bytes: slot
	OpSetLocal  // 2 bytes: slot
	OpGetGlobal // 2 bytes: name constant index
	OpDefineGlobal
	OpSetGlobal

	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate

	OpPrint

	OpJump       // 3 bytes: 16-bit big-endian forward offset
	OpJumpIfFalse // 3 bytes: 16-bit big-endian forward offset, does not pop
	OpLoop        // 3 bytes: 16-bit big-endian backward offset

	OpBuildList    // 3 bytes: 16-bit big-endian element count
	OpSubscript

	OpReturn
)

var mnemonics = [...]string{
	OpConstant:     "OP_CONSTANT",
	OpNull:         "OP_NULL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpGetLocal:     "OP_GET_LOCAL",
	OpSetLocal:     "OP_SET_LOCAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpPrint:        "OP_PRINT",
	OpJump:         "OP_JUMP",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpLoop:         "OP_LOOP",
	OpBuildList:    "OP_BUILD_LIST",
	OpSubscript:    "OP_SUBSCRIPT",
	OpReturn:       "OP_RETURN",
}

// Mnemonic returns op's disassembly name, or a placeholder for an unknown
// opcode byte (which can only arise from a corrupt Chunk).
func (op Op) Mnemonic() string {
	if int(op) < len(mnemonics) && mnemonics[op] != "" {
		return mnemonics[op]
	}
	return "OP_UNKNOWN"
}
