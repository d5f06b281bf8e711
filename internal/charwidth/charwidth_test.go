package charwidth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuneWidthAscii(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, RuneWidth('a'))
}

func TestRuneWidthEastAsianWide(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2, RuneWidth('日'))
}

func TestStringWidthExpandsTabs(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 8, StringWidth("\t", 8))
	assert.Equal(t, 8, StringWidth("a\t", 8))
}

func TestColumnAtAccountsForPriorWideRunes(t *testing.T) {
	t.Parallel()
	runes := []rune("日a")
	assert.Equal(t, 0, ColumnAt(runes, 0, 8))
	assert.Equal(t, 2, ColumnAt(runes, 1, 8))
}
