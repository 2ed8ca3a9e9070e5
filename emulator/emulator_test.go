package emulator

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/hack16/cpu"
)

var addProgram = []string{
	"@2",
	"D=A",
	"@3",
	"D=D+A",
	"@0",
	"M=D",
}

var addBinary = []string{
	"0000000000000010",
	"1110110010010000",
	"",
	"0000000000000011",
	"1110000010010000",
	"",
	"0000000000000000",
	"1110001100001000",
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.Equal(cpu.RunUnlimited, emu.Cycles)
	assert.NotNil(emu.Cpu)
}

func TestRunSource(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	report, err := emu.RunSource(strings.NewReader(strings.Join(addProgram, "\n")))
	assert.NoError(err)

	assert.Equal(cpu.Report{{Address: 0, Value: 5}}, report)
	assert.NotNil(emu.Program)
	assert.Equal(6, len(emu.Program.Instructions))
}

func TestRunBinary(t *testing.T) {
	assert := assert.New(t)

	// Blank lines are ignored.
	emu := NewEmulator()
	report, err := emu.RunBinary(strings.NewReader(strings.Join(addBinary, "\n")))
	assert.NoError(err)

	assert.Equal(cpu.Report{{Address: 0, Value: 5}}, report)
	assert.Nil(emu.Program)
}

func TestRunBinaryBadWord(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		lines []string
	}){
		{"short word", []string{"10101"}},
		{"long word", []string{"00000000000000101"}},
		{"bad digit", []string{"0000000000000010", "111000x010010000"}},
	}

	for _, entry := range table {
		emu := NewEmulator()
		report, err := emu.RunBinary(strings.NewReader(strings.Join(entry.lines, "\n")))

		// A malformed word yields no partial output.
		assert.Error(err, entry.name)
		assert.Nil(report, entry.name)

		var word *ErrWord
		assert.True(errors.As(err, &word), entry.name)
		assert.Equal(len(entry.lines), word.LineNo, entry.name)
	}
}

func TestRunSourceBad(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	report, err := emu.RunSource(strings.NewReader("D=W"))

	assert.Error(err)
	assert.Nil(report)
}

func TestCycleBudget(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"@0",
		"M=1",
		"(LOOP)",
		"@LOOP",
		"0;JMP",
	}

	emu := NewEmulator()
	emu.Cycles = 10

	report, err := emu.RunSource(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(cpu.Report{{Address: 0, Value: 1}}, report)
}

func TestReportJSON(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"@3",
		"M=-1",
		"@0",
		"M=1",
	}

	emu := NewEmulator()
	report, err := emu.RunSource(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	data, err := json.Marshal(report)
	assert.NoError(err)

	// First-write order survives serialization.
	assert.Equal(`{"3":65535,"0":1}`, string(data))
}
