// Package cpu implements the assembler and machine simulation for the
// Hack 16-bit computer.
//
// The machine consists of the A and D registers, a program counter,
// and a 65536-word RAM. A-instructions load a 15-bit address or
// constant into A; C-instructions run one of 28 ALU operations, store
// the result to any subset of A, D, and RAM[A], and conditionally
// jump to the address held in A. RAM writes are logged so a run can
// report its final observable memory state.
//
// The assembler is a two pass translator: pass one binds labels to
// instruction indexes, pass two encodes instructions and binds unseen
// symbols to fresh variable addresses. The comp, dest, and jump
// encoding tables are shared with the machine, each derived from a
// single definition.
package cpu
