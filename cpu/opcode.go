package cpu

// Instruction word layout. An A-instruction has the top bit clear and
// carries a 15-bit address or constant. A C-instruction is the prefix
// 111, then comp (7 bits), dest (3 bits), and jump (3 bits).
const (
	AMaxValue  = 0x7fff
	cInstrBits = uint16(0b111) << 13
)

// Dest is a destination selection. Its numeric value is the 3-bit dest
// field of a C-instruction: bit 2 selects A, bit 1 selects D, and
// bit 0 selects RAM[A].
type Dest uint16

const (
	DEST_NULL = Dest(0b000)
	DEST_M    = Dest(0b001)
	DEST_D    = Dest(0b010)
	DEST_A    = Dest(0b100)
)

// destNames maps dest field values to mnemonics.
var destNames = [8]string{"null", "M", "D", "MD", "A", "AM", "AD", "AMD"}

var destByName = map[string]Dest{}

func (dest Dest) String() string {
	return destNames[dest&7]
}

// Jump is a jump condition. Its numeric value is the 3-bit jump field.
type Jump uint16

const (
	JUMP_NULL = Jump(0)
	JUMP_JGT  = Jump(1)
	JUMP_JEQ  = Jump(2)
	JUMP_JGE  = Jump(3)
	JUMP_JLT  = Jump(4)
	JUMP_JNE  = Jump(5)
	JUMP_JLE  = Jump(6)
	JUMP_JMP  = Jump(7)
)

// jumpNames maps jump field values to mnemonics.
var jumpNames = [8]string{"null", "JGT", "JEQ", "JGE", "JLT", "JNE", "JLE", "JMP"}

var jumpByName = map[string]Jump{}

func (jump Jump) String() string {
	return jumpNames[jump&7]
}

// Taken reports whether the condition fires for a computed value.
func (jump Jump) Taken(value int16) bool {
	switch jump {
	case JUMP_JGT:
		return value > 0
	case JUMP_JEQ:
		return value == 0
	case JUMP_JGE:
		return value >= 0
	case JUMP_JLT:
		return value < 0
	case JUMP_JNE:
		return value != 0
	case JUMP_JLE:
		return value <= 0
	case JUMP_JMP:
		return true
	}

	return false
}

// compOp is one ALU operation: its canonical mnemonic, 7-bit comp
// field, and evaluation over the D register, the A register, and
// RAM[A].
type compOp struct {
	name string
	code uint16
	eval func(d, a, m int16) int16
}

// compOps is the single definition of the 28 comp operations. Both
// lookup directions are derived from it, so the assembler and the
// machine cannot disagree on an encoding.
var compOps = [28]compOp{
	{"0", 0b0101010, func(d, a, m int16) int16 { return 0 }},
	{"1", 0b0111111, func(d, a, m int16) int16 { return 1 }},
	{"-1", 0b0111010, func(d, a, m int16) int16 { return -1 }},
	{"D", 0b0001100, func(d, a, m int16) int16 { return d }},
	{"A", 0b0110000, func(d, a, m int16) int16 { return a }},
	{"M", 0b1110000, func(d, a, m int16) int16 { return m }},
	{"!D", 0b0001101, func(d, a, m int16) int16 { return ^d }},
	{"!A", 0b0110001, func(d, a, m int16) int16 { return ^a }},
	{"!M", 0b1110001, func(d, a, m int16) int16 { return ^m }},
	{"-D", 0b0001111, func(d, a, m int16) int16 { return -d }},
	{"-A", 0b0110011, func(d, a, m int16) int16 { return -a }},
	{"-M", 0b1110011, func(d, a, m int16) int16 { return -m }},
	{"D+1", 0b0011111, func(d, a, m int16) int16 { return d + 1 }},
	{"A+1", 0b0110111, func(d, a, m int16) int16 { return a + 1 }},
	{"M+1", 0b1110111, func(d, a, m int16) int16 { return m + 1 }},
	{"D-1", 0b0001110, func(d, a, m int16) int16 { return d - 1 }},
	{"A-1", 0b0110010, func(d, a, m int16) int16 { return a - 1 }},
	{"M-1", 0b1110010, func(d, a, m int16) int16 { return m - 1 }},
	{"D+A", 0b0000010, func(d, a, m int16) int16 { return d + a }},
	{"D+M", 0b1000010, func(d, a, m int16) int16 { return d + m }},
	{"D-A", 0b0010011, func(d, a, m int16) int16 { return d - a }},
	{"D-M", 0b1010011, func(d, a, m int16) int16 { return d - m }},
	{"A-D", 0b0000111, func(d, a, m int16) int16 { return a - d }},
	{"M-D", 0b1000111, func(d, a, m int16) int16 { return m - d }},
	{"D&A", 0b0000000, func(d, a, m int16) int16 { return d & a }},
	{"D&M", 0b1000000, func(d, a, m int16) int16 { return d & m }},
	{"D|A", 0b0010101, func(d, a, m int16) int16 { return d | a }},
	{"D|M", 0b1010101, func(d, a, m int16) int16 { return d | m }},
}

// compAlias maps the accepted commutative spellings to canonical
// mnemonics.
var compAlias = map[string]string{
	"1+D": "D+1",
	"1+A": "A+1",
	"1+M": "M+1",
	"A+D": "D+A",
	"M+D": "D+M",
}

var compByName = map[string](*compOp){}
var compByCode = map[uint16](*compOp){}

func init() {
	for n := range compOps {
		op := &compOps[n]
		compByName[op.name] = op
		compByCode[op.code] = op
	}
	for alias, name := range compAlias {
		compByName[alias] = compByName[name]
	}

	for code, name := range destNames {
		destByName[name] = Dest(code)
	}
	for code, name := range jumpNames {
		jumpByName[name] = Jump(code)
	}
}

// makeCodeA encodes an A-instruction word for an address or constant.
func makeCodeA(value int) uint16 {
	return uint16(value) & AMaxValue
}

// makeCodeC encodes a C-instruction word from its three fields.
func makeCodeC(comp *compOp, dest Dest, jump Jump) uint16 {
	return cInstrBits | (comp.code << 6) | (uint16(dest) << 3) | uint16(jump)
}
