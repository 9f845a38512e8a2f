package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	req := require.New(t)

	req.Equal("short", truncate("short", 10))
	req.Equal("exactly-10", truncate("exactly-10", 10))
	req.Equal("exactly-1…", truncate("exactly-10!", 10))

	// Multi-byte runes must never be split mid-sequence.
	long := strings.Repeat("é", 12) + "日本語"
	cut := truncate(long, 10)
	req.True(utf8.ValidString(cut))
	req.Equal(strings.Repeat("é", 9)+"…", cut)
}

func TestSplitCSV(t *testing.T) {
	req := require.New(t)

	req.Equal([]string{"a", "b", "c"}, splitCSV(" a, b ,c,"))
	req.Nil(splitCSV("  ,  "))
}
