package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParse_Empty(t *testing.T) {
	result := Parse("   ")
	assert.Equal(t, "", result.Command)
	assert.Nil(t, result.Args)
}

func TestParse_SingleWord(t *testing.T) {
	result := Parse("look")
	assert.Equal(t, "look", result.Command)
	assert.Nil(t, result.Args)
	assert.Equal(t, "", result.RawArgs)
}

func TestParse_Lowercase(t *testing.T) {
	assert.Equal(t, "north", Parse("NORTH").Command)
}

func TestParse_MultiWordItem(t *testing.T) {
	result := Parse("  buy   Granola  bar ")
	assert.Equal(t, "buy", result.Command)
	assert.Equal(t, []string{"Granola", "bar"}, result.Args)
	assert.Equal(t, "Granola  bar", result.RawArgs)
}

func TestParseResult_Number(t *testing.T) {
	n, ok := Parse("choose 2").Number()
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	for _, line := range []string{"choose", "choose 0", "choose -1", "choose two", "choose 1 2"} {
		_, ok := Parse(line).Number()
		assert.False(t, ok, line)
	}
}

func TestPropertyParseAlwaysLowercasesCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z]{1,20}`).Draw(t, "word")
		result := Parse(word)
		for _, c := range result.Command {
			if c >= 'A' && c <= 'Z' {
				t.Fatalf("command %q contains uppercase char in Parse result %q", word, result.Command)
			}
		}
	})
}

func TestPropertyParseKeepsArgumentsVerbatim(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cmd := rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "cmd")
		args := rapid.SliceOfN(rapid.StringMatching(`[A-Za-z0-9]{1,8}`), 1, 4).Draw(t, "args")
		line := cmd
		for _, a := range args {
			line += " " + a
		}
		result := Parse(line)
		if result.Command != cmd {
			t.Fatalf("command: got %q want %q", result.Command, cmd)
		}
		if len(result.Args) != len(args) {
			t.Fatalf("args: got %v want %v", result.Args, args)
		}
		for i := range args {
			if result.Args[i] != args[i] {
				t.Fatalf("arg %d: got %q want %q", i, result.Args[i], args[i])
			}
		}
	})
}
