package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "a b c", CollapseWhitespace("  a \n\t b   c "))
	require.Equal(t, "", CollapseWhitespace(" \n "))
}

func TestStripNonPrintable(t *testing.T) {
	require.Equal(t, "abc\n", StripNonPrintable("a\x00b\x08c\n"))
}
