package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mchmarny/pwcheck/pkg/strength"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Args(t *testing.T) {
	out, _, err := runApp(t, "", "", "check", "Abcdef1!", "aaaaaaaaaaaa")
	require.NoError(t, err)

	first := strings.Index(out, "Password Strength: Strong (Score: 5)")
	second := strings.Index(out, "Password Strength: Moderate (Score: 2)")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
	assert.NotContains(t, out, "Abcdef1!")
}

func TestCheck_JSONKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("Abcdefgh1234!@\n\nabc\nAbcdef1!\n"), 0600))

	out, _, err := runApp(t, "", "", "--format", "json", "check", "--file", path, "--parallel", "2")
	require.NoError(t, err)

	var results []checkResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)

	assert.Equal(t, 1, results[0].Input)
	assert.Equal(t, strength.VeryStrong, results[0].Report.Strength)
	assert.Equal(t, 3, results[1].Input)
	assert.Equal(t, strength.Weak, results[1].Report.Strength)
	assert.Equal(t, 4, results[2].Input)
	assert.Equal(t, 5, results[2].Report.Score)
	assert.NotContains(t, out, "Abcdef1!")
}

func TestCheck_Stdin(t *testing.T) {
	out, _, err := runApp(t, "Abcdef1!\r\nabc\n", "", "--format", "yaml", "check", "--file=-")
	require.NoError(t, err)
	assert.Contains(t, out, "input: 1")
	assert.Contains(t, out, "input: 2")
	assert.Contains(t, out, "strength: Strong")
}

func TestCheck_MinScore(t *testing.T) {
	_, _, err := runApp(t, "", "", "check", "--min-score", "4", "Abcdef1!")
	require.NoError(t, err)

	out, _, err := runApp(t, "", "", "check", "--min-score", "4", "Abcdef1!", "abc")
	assert.ErrorIs(t, err, ErrBelowMinScore)
	assert.Contains(t, out, "Password Strength: Weak (Score: 1)")
}

func TestCheck_MissingFile(t *testing.T) {
	_, _, err := runApp(t, "", "", "check", "--file", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestCheck_NoInputShowsHelp(t *testing.T) {
	out, _, err := runApp(t, "", "", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "check")
}

func TestScoreAll(t *testing.T) {
	list := make([]candidate, 0, 100)
	for i := range 100 {
		p := "abc"
		if i%2 == 0 {
			p = "Abcdef1!"
		}
		list = append(list, candidate{index: i + 1, password: p})
	}

	results, err := scoreAll(t.Context(), list, 0)
	require.NoError(t, err)
	require.Len(t, results, len(list))

	for i, r := range results {
		assert.Equal(t, i+1, r.Input)
		assert.Equal(t, strength.Evaluate(list[i].password), r.Report)
	}
}

func TestReadCandidates(t *testing.T) {
	list, err := readCandidates(strings.NewReader("a\n\n b \r\nc"))
	require.NoError(t, err)
	assert.Equal(t, []candidate{
		{index: 1, password: "a"},
		{index: 3, password: " b "},
		{index: 4, password: "c"},
	}, list)
}

func TestEnforceMinScore(t *testing.T) {
	results := []checkResult{
		{Input: 1, Report: strength.Report{Score: 5}},
		{Input: 2, Report: strength.Report{Score: -1}},
	}

	assert.NoError(t, enforceMinScore(results, -1))

	err := enforceMinScore(results, 0)
	require.ErrorIs(t, err, ErrBelowMinScore)
	assert.Contains(t, err.Error(), "[2]")
}

func TestCheck_LongLine(t *testing.T) {
	long := strings.Repeat("Ab1!", 20000)
	path := filepath.Join(t.TempDir(), "long.txt")
	require.NoError(t, os.WriteFile(path, []byte(long+"\nabc\n"), 0600))

	out, _, err := runApp(t, "", "", "--format", "json", "check", "--file", path)
	require.NoError(t, err)

	var results []checkResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, strength.VeryStrong, results[0].Report.Strength)
	assert.Equal(t, 2, results[1].Input)
}

func TestReadCandidates_LongLineMatchesInteractive(t *testing.T) {
	long := strings.Repeat("x", 200*1024)

	list, err := readCandidates(strings.NewReader(long))
	require.NoError(t, err)
	require.Len(t, list, 1)

	line, err := newBufferedLineReader(strings.NewReader(long)).ReadLine()
	require.NoError(t, err)
	assert.Equal(t, line, list[0].password)
}

func TestCheck_MinStrength(t *testing.T) {
	_, _, err := runApp(t, "", "", "check", "--min-strength", "strong", "Abcdef1!", "Abcdefgh1234!@")
	require.NoError(t, err)

	_, _, err = runApp(t, "", "", "check", "--min-strength", "Very Strong", "Abcdef1!")
	assert.ErrorIs(t, err, ErrBelowMinStrength)

	_, _, err = runApp(t, "", "", "check", "--min-strength", "unbreakable", "Abcdef1!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min-strength")
}

func TestEnforceMinStrength(t *testing.T) {
	results := []checkResult{
		{Input: 1, Report: strength.Report{Strength: strength.Strong}},
		{Input: 2, Report: strength.Report{Strength: strength.Weak}},
	}

	assert.NoError(t, enforceMinStrength(results, strength.VeryWeak))
	assert.NoError(t, enforceMinStrength(results, strength.Weak))

	err := enforceMinStrength(results, strength.Moderate)
	require.ErrorIs(t, err, ErrBelowMinStrength)
	assert.Contains(t, err.Error(), `"Moderate"`)
	assert.Contains(t, err.Error(), "[2]")
}
