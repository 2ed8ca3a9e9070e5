package cpu

import (
	"iter"
	"maps"
	"strconv"

	"github.com/ezrec/hack16/internal"
)

// VariableBase is the first RAM address handed out to user variables.
const VariableBase = 16

// Predefined pointer symbols.
var pointerSymbols = map[string]int{
	"SP":   0,
	"LCL":  1,
	"ARG":  2,
	"THIS": 3,
	"THAT": 4,
}

// Predefined memory-mapped device bases.
var deviceSymbols = map[string]int{
	"SCREEN": 16384,
	"KBD":    24576,
}

// Predefined register symbols R0-R15.
var registerSymbols = make(map[string]int, 16)

func init() {
	for n := range 16 {
		registerSymbols["R"+strconv.Itoa(n)] = n
	}
}

// Builtins iterates the predefined symbol bindings: the registers
// R0-R15, the pointers SP, LCL, ARG, THIS, and THAT, and the SCREEN
// and KBD device bases.
func Builtins() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(
		maps.All(registerSymbols),
		maps.All(pointerSymbols),
		maps.All(deviceSymbols),
	)
}

// SymbolTable binds symbolic names to non-negative addresses for one
// assembly run.
type SymbolTable struct {
	symbols map[string]int
	next    int // Next free variable address.
}

// NewSymbolTable creates a table seeded with the predefined symbols.
func NewSymbolTable() (st *SymbolTable) {
	st = &SymbolTable{
		symbols: make(map[string]int, 64),
		next:    VariableBase,
	}

	for name, addr := range Builtins() {
		st.Add(name, addr)
	}

	return
}

// Add binds a name to an address, replacing any existing binding.
func (st *SymbolTable) Add(name string, addr int) {
	st.symbols[name] = addr
}

// Get looks up a binding.
func (st *SymbolTable) Get(name string) (addr int, ok bool) {
	addr, ok = st.symbols[name]
	return
}

// Allocate binds a name at the variable cursor and advances it.
// Addresses are handed out sequentially from VariableBase and never
// reused. The caller decides when an unresolved symbol becomes a
// variable.
func (st *SymbolTable) Allocate(name string) (addr int) {
	addr = st.next
	st.next += 1
	st.Add(name, addr)
	return
}
