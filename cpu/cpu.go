package cpu

import (
	"log"
)

// RamSize is the number of addressable memory words.
const RamSize = 65536

// RunUnlimited as a cycle budget runs to natural termination only.
const RunUnlimited = 0

// Cpu owns the machine state for one simulation run: the A and D
// registers, the program counter, RAM, and the log of RAM writes that
// becomes the final report. State is never shared across runs.
type Cpu struct {
	Verbose bool // If set, verbosely logs executed instructions.

	A  int16 // Address register.
	D  int16 // Data register.
	Pc int   // Program counter, an instruction index.

	ram  []int16
	code []uint16

	written map[int]int16 // Last value written per address.
	order   []int         // Addresses in first-write order.
}

// NewCpu creates a machine with zeroed state and no program.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		ram:     make([]int16, RamSize),
		written: make(map[int]int16),
	}

	return
}

// Load loads an assembled program and resets the program counter.
func (cpu *Cpu) Load(prog *Program) {
	words := make([]uint16, 0, len(prog.Instructions))
	for _, word := range prog.Words() {
		words = append(words, word)
	}
	cpu.LoadWords(words)
}

// LoadWords loads raw instruction words and resets the program
// counter.
func (cpu *Cpu) LoadWords(words []uint16) {
	cpu.code = words
	cpu.Pc = 0
}

// Peek returns the RAM value at an address.
func (cpu *Cpu) Peek(addr int) int16 {
	return cpu.ram[uint16(addr)]
}

// Poke sets RAM directly, bypassing the write log.
func (cpu *Cpu) Poke(addr int, value int16) {
	cpu.ram[uint16(addr)] = value
}

// store writes the computed value to the selected destinations. A is
// updated first, so a RAM store with dest A also selected lands at
// the new A value; D is independent of both.
func (cpu *Cpu) store(value int16, dest Dest) {
	if dest&DEST_A != 0 {
		cpu.A = value
	}
	if dest&DEST_M != 0 {
		addr := int(uint16(cpu.A))
		cpu.ram[addr] = value
		if _, seen := cpu.written[addr]; !seen {
			cpu.order = append(cpu.order, addr)
		}
		cpu.written[addr] = value
	}
	if dest&DEST_D != 0 {
		cpu.D = value
	}
}

// Tick executes one fetch-decode-execute cycle. done is set when the
// program counter has left the instruction stream.
func (cpu *Cpu) Tick() (done bool, err error) {
	if cpu.Pc < 0 || cpu.Pc >= len(cpu.code) {
		done = true
		return
	}

	word := cpu.code[cpu.Pc]

	if word&0x8000 == 0 {
		// A-instruction: load the 15-bit payload. No store or jump
		// phase.
		cpu.A = int16(word)
		cpu.Pc += 1
		return
	}

	comp, ok := compByCode[(word>>6)&0x7f]
	if !ok {
		err = ErrCompCode(word)
		return
	}
	dest := Dest((word >> 3) & 7)
	jump := Jump(word & 7)

	value := comp.eval(cpu.D, cpu.A, cpu.ram[uint16(cpu.A)])

	if cpu.Verbose {
		log.Printf("%04x: %v=%v;%v -> %v", cpu.Pc, dest, comp.name, jump, value)
	}

	cpu.store(value, dest)

	if jump.Taken(value) {
		cpu.Pc = int(cpu.A)
	} else {
		cpu.Pc += 1
	}

	return
}

// Run executes until the program counter leaves the instruction
// stream or the cycle budget is spent, whichever is first. A budget
// of RunUnlimited runs to natural termination only. Exhausting the
// budget is not an error.
func (cpu *Cpu) Run(budget int) (err error) {
	for cycles := 0; budget == RunUnlimited || cycles <= budget; cycles++ {
		var done bool
		done, err = cpu.Tick()
		if done || err != nil {
			return
		}
	}

	return
}
