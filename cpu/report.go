package cpu

import (
	"bytes"
	"fmt"
	"iter"
)

// Write is one reported memory cell: the last value written to an
// address, as an unsigned 16-bit quantity.
type Write struct {
	Address int
	Value   uint16
}

// Report is the final memory state of a run, restricted to addresses
// actually written, in first-write order.
type Report []Write

// Report returns the machine's write log. Negative signed values
// normalize to their unsigned 16-bit equivalents.
func (cpu *Cpu) Report() (report Report) {
	for _, addr := range cpu.order {
		report = append(report, Write{
			Address: addr,
			Value:   uint16(cpu.written[addr]),
		})
	}

	return
}

// All iterates the report in first-write order.
func (report Report) All() iter.Seq2[int, uint16] {
	return func(yield func(addr int, value uint16) bool) {
		for _, write := range report {
			if !yield(write.Address, write.Value) {
				return
			}
		}
	}
}

// MarshalJSON renders the report as a JSON object keyed by decimal
// address, preserving first-write order.
func (report Report) MarshalJSON() (data []byte, err error) {
	buf := &bytes.Buffer{}

	buf.WriteByte('{')
	for n, write := range report {
		if n > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(buf, "\"%d\":%d", write.Address, write.Value)
	}
	buf.WriteByte('}')

	data = buf.Bytes()
	return
}
