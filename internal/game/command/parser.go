package command

import (
	"strconv"
	"strings"
)

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the text after the command, used for multi-word item names.
	RawArgs string
}

// Parse splits a text line into a command and arguments. Surrounding
// whitespace is ignored.
//
// Postcondition: If line is blank, Command is empty.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}

	spaceIdx := strings.IndexByte(line, ' ')
	if spaceIdx < 0 {
		return ParseResult{
			Command: strings.ToLower(line),
		}
	}

	cmd := strings.ToLower(line[:spaceIdx])
	rest := strings.TrimSpace(line[spaceIdx+1:])

	var args []string
	if rest != "" {
		args = strings.Fields(rest)
	}

	return ParseResult{
		Command: cmd,
		Args:    args,
		RawArgs: rest,
	}
}

// Number parses the single argument as a 1-based choice number.
//
// Postcondition: ok is false unless there is exactly one positive integer argument.
func (p ParseResult) Number() (n int, ok bool) {
	if len(p.Args) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(p.Args[0])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
