package history

import (
	"bytes"
	"fmt"
)

// Repair converts the capture tool's history format (JSON objects written
// back-to-back with no array wrapper and no separators) into a single valid
// JSON array.
//
// The splitting is done with a real tokenizer that tracks string and escape
// state, so a '}' or '{' inside a quoted value does not confuse it the way a
// naive string replacement would. An incomplete trailing object (a write in
// progress) makes the whole repair fail; callers treat that as a transient
// condition and retry on the next poll.
func Repair(data []byte) ([]byte, error) {
	var out bytes.Buffer
	out.WriteByte('[')

	depth := 0
	inString := false
	escaped := false
	objects := 0
	start := -1

	for i, b := range data {
		if start == -1 {
			// Between objects: only whitespace or the start of the next
			// object is legal.
			switch {
			case b == '{':
				if objects > 0 {
					out.WriteByte(',')
				}
				start = i
				depth = 1
			case b == ' ' || b == '\t' || b == '\r' || b == '\n':
				// skip
			default:
				return nil, fmt.Errorf("unexpected character %q at offset %d", b, i)
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				out.Write(data[start : i+1])
				objects++
				start = -1
			}
		}
	}

	if start != -1 {
		return nil, fmt.Errorf("truncated object at offset %d", start)
	}

	out.WriteByte(']')
	return out.Bytes(), nil
}
