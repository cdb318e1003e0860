package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseText parses a text program image. Each non-blank line holds either
// a single instruction word, placed after the previous one (starting at
// TextBase), or an address followed by a word, as printed by the MARS dump
// driver. Values are hexadecimal with an optional 0x prefix. Text after '#'
// is ignored.
func ParseText(r io.Reader) (*Program, error) {
	prog := &Program{
		EntryPoint: TextBase,
		InitialSP:  DefaultStackPointer,
	}

	var (
		seg     *Segment
		next    = TextBase
		first   = true
		scanner = bufio.NewScanner(r)
	)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: expected [address] word, got %d fields", lineNo, len(fields))
		}

		addr := next
		if len(fields) == 2 {
			a, err := parseHex(fields[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid address %q: %w", lineNo, fields[0], err)
			}
			addr = a
		}

		word, err := parseHex(fields[len(fields)-1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid word %q: %w", lineNo, fields[len(fields)-1], err)
		}

		if first {
			prog.EntryPoint = addr
			first = false
		}

		if seg == nil || addr != next {
			prog.Segments = append(prog.Segments, Segment{
				VirtAddr: addr,
				Flags:    SegmentFlagRead | SegmentFlagExecute,
			})
			seg = &prog.Segments[len(prog.Segments)-1]
		}

		seg.Data = binary.LittleEndian.AppendUint32(seg.Data, word)
		seg.MemSize = uint32(len(seg.Data))
		next = addr + 4
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text image: %w", err)
	}

	return prog, nil
}

func parseHex(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
