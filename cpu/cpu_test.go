package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doRun(t *testing.T, program []string, budget int) (cpu *Cpu) {
	t.Helper()

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	cpu = NewCpu()
	cpu.Load(prog)

	err = cpu.Run(budget)
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestCpuAdd(t *testing.T) {
	assert := assert.New(t)

	cpu := doRun(t, []string{
		"@2",
		"D=A",
		"@3",
		"D=D+A",
		"@0",
		"M=D",
	}, RunUnlimited)

	assert.Equal(Report{{Address: 0, Value: 5}}, cpu.Report())
	assert.Equal(int16(5), cpu.Peek(0))
	assert.Equal(6, cpu.Pc)
}

func TestCpuAInstruction(t *testing.T) {
	assert := assert.New(t)

	cpu := doRun(t, []string{"@12345"}, RunUnlimited)

	assert.Equal(int16(12345), cpu.A)
	assert.Equal(int16(0), cpu.D)
	assert.Equal(1, cpu.Pc)
	assert.Empty(cpu.Report())
}

func TestCpuLoop(t *testing.T) {
	assert := assert.New(t)

	// sum = 1 + 2 + ... + 5
	cpu := doRun(t, []string{
		"@i",
		"M=1",
		"@sum",
		"M=0",
		"(LOOP)",
		"@i",
		"D=M",
		"@5",
		"D=D-A",
		"@END",
		"D;JGT",
		"@i",
		"D=M",
		"@sum",
		"M=D+M",
		"@i",
		"M=M+1",
		"@LOOP",
		"0;JMP",
		"(END)",
	}, RunUnlimited)

	assert.Equal(int16(15), cpu.Peek(17)) // sum
	assert.Equal(int16(6), cpu.Peek(16))  // i
}

func TestCpuJumpConditions(t *testing.T) {
	assert := assert.New(t)

	values := map[string]int16{"-1": -1, "0": 0, "1": 1}

	table := [](struct {
		jump  string
		fires map[string]bool
	}){
		{"JGT", map[string]bool{"-1": false, "0": false, "1": true}},
		{"JEQ", map[string]bool{"-1": false, "0": true, "1": false}},
		{"JGE", map[string]bool{"-1": false, "0": true, "1": true}},
		{"JLT", map[string]bool{"-1": true, "0": false, "1": false}},
		{"JNE", map[string]bool{"-1": true, "0": false, "1": true}},
		{"JLE", map[string]bool{"-1": true, "0": true, "1": false}},
		{"JMP", map[string]bool{"-1": true, "0": true, "1": true}},
	}

	for _, entry := range table {
		for literal, value := range values {
			// When the jump fires, the trailing store is skipped
			// and the report stays empty.
			cpu := doRun(t, []string{
				"D=" + literal,
				"@5",
				"D;" + entry.jump,
				"@0",
				"M=1",
			}, RunUnlimited)

			fired := len(cpu.Report()) == 0
			assert.Equal(entry.fires[literal], fired,
				"%v at %v", entry.jump, value)
		}
	}
}

func TestCpuStoreCombinations(t *testing.T) {
	assert := assert.New(t)

	// MD= writes RAM at the pre-store A; AM= writes at the value
	// just stored to A.
	cpu := doRun(t, []string{
		"@7",
		"MD=A",
	}, RunUnlimited)
	assert.Equal(int16(7), cpu.D)
	assert.Equal(Report{{Address: 7, Value: 7}}, cpu.Report())

	cpu = doRun(t, []string{
		"@3",
		"D=A",
		"AM=D+1",
	}, RunUnlimited)
	assert.Equal(int16(4), cpu.A)
	assert.Equal(Report{{Address: 4, Value: 4}}, cpu.Report())
}

func TestCpuWriteLogOrder(t *testing.T) {
	assert := assert.New(t)

	cpu := doRun(t, []string{
		"@3",
		"M=1",
		"@0",
		"M=1",
		"@3",
		"M=0",
	}, RunUnlimited)

	// First-write order, last value written.
	assert.Equal(Report{
		{Address: 3, Value: 0},
		{Address: 0, Value: 1},
	}, cpu.Report())
}

func TestCpuNegativeNormalization(t *testing.T) {
	assert := assert.New(t)

	cpu := doRun(t, []string{
		"@0",
		"M=-1",
	}, RunUnlimited)

	assert.Equal(Report{{Address: 0, Value: 65535}}, cpu.Report())
	assert.Equal(int16(-1), cpu.Peek(0))
}

func TestCpuBitwise(t *testing.T) {
	assert := assert.New(t)

	// D starts at zero; !D is full 16-bit negation of the stored
	// bit pattern.
	cpu := doRun(t, []string{"M=!D"}, RunUnlimited)
	assert.Equal(Report{{Address: 0, Value: 65535}}, cpu.Report())
}

func TestCpuBudget(t *testing.T) {
	assert := assert.New(t)

	spin := []string{
		"@0",
		"M=M+1",
		"(LOOP)",
		"@LOOP",
		"0;JMP",
	}

	// Budget exhaustion is not an error; state reports as-is.
	cpu := doRun(t, spin, 100)
	assert.Equal(Report{{Address: 0, Value: 1}}, cpu.Report())
}

func TestCpuBudgetIdempotence(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"@2",
		"D=A",
		"@3",
		"D=D+A",
		"@0",
		"M=D",
	}

	unlimited := doRun(t, program, RunUnlimited)
	exact := doRun(t, program, len(program))
	excess := doRun(t, program, 10000)

	assert.Equal(unlimited.Report(), exact.Report())
	assert.Equal(unlimited.Report(), excess.Report())
}

func TestCpuBadCompCode(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.LoadWords([]uint16{0xffff}) // comp field 1111111 is undefined

	_, err := cpu.Tick()
	assert.Error(err)
	assert.ErrorIs(err, ErrCompCode(0xffff))
}

func TestCpuPoke(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Poke(100, 42)

	assert.Equal(int16(42), cpu.Peek(100))
	assert.Empty(cpu.Report())
}
