// Package main prints usage for the MIPS32 simulator.
//
// For the full CLI, use: go run ./cmd/mipssim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("mipssim - MIPS32 instruction-level simulator")
	fmt.Println("")
	fmt.Println("Usage: mipssim [options] <program>")
	fmt.Println("")
	fmt.Println("The program may be a little-endian MIPS32 ELF executable or a text")
	fmt.Println("image with one hexadecimal instruction word per line.")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  --config            Path to a YAML or JSON run configuration")
	fmt.Println("  --max-instructions  Stop after this many instructions")
	fmt.Println("  --log.level         trace, debug, info, warn, error or crit")
	fmt.Println("  --shell             Start the interactive command shell")
	fmt.Println("  --dump              Print the register file after the run")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/mipssim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/mipssim' instead.")
	}
}
