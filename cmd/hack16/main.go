// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/hack16/cpu"
	"github.com/ezrec/hack16/emulator"
)

func main() {
	var compile string
	var cycles int
	var output string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to compile to .hack, without executing")
	flag.IntVar(&cycles, "n", 0, "Cycle budget (0 for unlimited)")
	flag.StringVar(&output, "o", "", "Output path: the .hack file with -c, else the memory report (default RamJson.json beside the input)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	// Compile only.
	if len(compile) != 0 {
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		hack := output
		if len(hack) == 0 {
			hack = strings.TrimSuffix(compile, filepath.Ext(compile)) + ".hack"
		}
		ouf, err := os.Create(hack)
		if err != nil {
			log.Fatalf("%v: %v", hack, err)
		}
		defer ouf.Close()

		for _, word := range prog.Binary() {
			fmt.Fprintln(ouf, word)
		}
		return
	}

	if flag.NArg() != 1 {
		log.Fatalf("%v: Expected a single .asm or .hack input", os.Args[0])
	}
	input := flag.Arg(0)

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Cycles = cycles

	var report cpu.Report
	if filepath.Ext(input) == ".hack" {
		report, err = emu.RunBinary(inf)
	} else {
		report, err = emu.RunSource(inf)
	}
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	if len(output) == 0 {
		output = filepath.Join(filepath.Dir(input), "RamJson.json")
	}

	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	err = os.WriteFile(output, data, 0o644)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
