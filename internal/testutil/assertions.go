package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireStatementsInOrder checks that every wanted statement was emitted,
// in the given relative order. Unrelated statements may appear in between.
func RequireStatementsInOrder(t *testing.T, result *HarnessResult, want ...string) {
	t.Helper()
	require.NoError(t, result.Err)
	got := result.Statements()
	i := 0
	for _, s := range got {
		if i < len(want) && s == want[i] {
			i++
		}
	}
	require.Equal(t, len(want), i,
		"statement %q was not found in order; emitted:\n%s", safeIndex(want, i), strings.Join(got, "\n"))
}

// RequireLogged checks that the log output of a run contains substr.
func RequireLogged(t *testing.T, result *HarnessResult, substr string) {
	t.Helper()
	require.True(t, strings.Contains(result.LogOutput, substr),
		"expected log output to contain %q", substr)
}

func safeIndex(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
