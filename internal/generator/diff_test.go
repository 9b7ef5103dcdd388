package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedDiffIdentical(t *testing.T) {
	content := []byte("same\ncontent\n")
	assert.Empty(t, UnifiedDiff("a", "a", content, content))
}

func TestUnifiedDiffAddition(t *testing.T) {
	old := []byte("line one\nline two\n")
	newer := []byte("line one\ninserted\nline two\n")

	diff := UnifiedDiff("f", "f", old, newer)
	require.NotEmpty(t, diff)
	assert.Contains(t, diff, "--- f")
	assert.Contains(t, diff, "+++ f")
	assert.Contains(t, diff, "+inserted")
	assert.NotContains(t, diff, "-line one")
}

func TestUnifiedDiffDeletion(t *testing.T) {
	old := []byte("keep\ndrop\nkeep too\n")
	newer := []byte("keep\nkeep too\n")

	diff := UnifiedDiff("f", "f", old, newer)
	assert.Contains(t, diff, "-drop")
	assert.Contains(t, diff, " keep")
}

func TestUnifiedDiffNewFile(t *testing.T) {
	diff := UnifiedDiff("f", "f", nil, []byte("a\nb\n"))
	assert.Contains(t, diff, "+a")
	assert.Contains(t, diff, "+b")
}

func TestUnifiedDiffBinary(t *testing.T) {
	diff := UnifiedDiff("f", "f", []byte{0x00, 0x01}, []byte("text\n"))
	assert.Equal(t, "binary files differ\n", diff)
}

func TestFormatDiffContextLines(t *testing.T) {
	var old, newer strings.Builder
	for i := 0; i < 20; i++ {
		line := string(rune('a'+i)) + "\n"
		old.WriteString(line)
		newer.WriteString(line)
		if i == 9 {
			newer.WriteString("CHANGED\n")
		}
	}

	diff := FormatDiff("f", "f", []byte(old.String()), []byte(newer.String()), &DiffOptions{ContextLines: 1})
	require.NotEmpty(t, diff)
	assert.Contains(t, diff, "+CHANGED")
	// One line of context on each side, not the whole file.
	assert.NotContains(t, diff, " a\n")
	assert.Contains(t, diff, " j\n")
	assert.Contains(t, diff, " k\n")
}

func TestFormatDiffHunkHeader(t *testing.T) {
	diff := UnifiedDiff("f", "f", []byte("a\nb\n"), []byte("a\nc\n"))
	assert.Contains(t, diff, "@@ -1,2 +1,2 @@")
}

func TestFormatDiffWidthTruncatesLines(t *testing.T) {
	long := strings.Repeat("x", 200)
	diff := FormatDiff("f", "f", nil, []byte(long+"\n"), &DiffOptions{Width: 40})

	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 40, "line %q exceeds width", line)
	}
	assert.Contains(t, diff, "…")

	// Width 0 leaves lines untouched.
	full := FormatDiff("f", "f", nil, []byte(long+"\n"), &DiffOptions{})
	assert.Contains(t, full, long)
}

func TestGroupHunksMergesAdjacentChanges(t *testing.T) {
	old := []byte("a\nb\nc\nd\ne\n")
	newer := []byte("a\nB\nc\nD\ne\n")

	diff := UnifiedDiff("f", "f", old, newer)
	// Changes two lines apart share one hunk with the default context.
	assert.Equal(t, 1, strings.Count(diff, "@@ -"))
}
