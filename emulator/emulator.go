// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/hack16/cpu"
)

// WordLength is the width of one binary text word.
const WordLength = 16

// Emulator runs symbolic or pre-assembled programs on a fresh machine
// and reports final memory state. The caller picks the entry point;
// the emulator never sniffs the input format.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Cycles  int          // Cycle budget; cpu.RunUnlimited for no limit.
	Cpu     *cpu.Cpu     // The machine for this run.
	Program *cpu.Program // Program listing when assembled from source.
}

// NewEmulator creates an emulator with an unlimited cycle budget.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

// RunSource assembles symbolic input and executes it.
func (emu *Emulator) RunSource(input io.Reader) (report cpu.Report, err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Cpu.Load(prog)

	return emu.run()
}

// RunBinary executes pre-assembled binary text: one 16-character 0/1
// word per line, blank lines ignored. A malformed word aborts the run
// with no partial output.
func (emu *Emulator) RunBinary(input io.Reader) (report cpu.Report, err error) {
	var words []uint16
	var lineno int

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lineno += 1
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if len(line) != WordLength {
			err = &ErrWord{LineNo: lineno, Word: line}
			return
		}
		value, _err := strconv.ParseUint(line, 2, 16)
		if _err != nil {
			err = &ErrWord{LineNo: lineno, Word: line}
			return
		}
		words = append(words, uint16(value))
	}
	if err = scanner.Err(); err != nil {
		return
	}

	emu.Program = nil
	emu.Cpu.LoadWords(words)

	return emu.run()
}

// run executes the loaded program against the cycle budget.
func (emu *Emulator) run() (report cpu.Report, err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Run(emu.Cycles)
	if err != nil {
		err = &ErrRuntime{Pc: emu.Cpu.Pc, LineNo: emu.lineNo(), Err: err}
		return
	}

	report = emu.Cpu.Report()
	return
}

// lineNo maps the current program counter back to a source line, when
// the program came from the assembler.
func (emu *Emulator) lineNo() int {
	if emu.Program == nil {
		return 0
	}

	return emu.Program.LineNo(emu.Cpu.Pc)
}
