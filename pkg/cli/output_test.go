package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mchmarny/pwcheck/pkg/config"
	"github.com/mchmarny/pwcheck/pkg/strength"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTextReport(&buf, strength.Evaluate("")))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "Password Strength: Weak (Score: 0)", lines[1])
	assert.Equal(t, "Feedback:", lines[2])
	for _, l := range lines[3:8] {
		assert.True(t, strings.HasPrefix(l, "- "))
	}
	assert.Equal(t, strings.Repeat("-", 30), lines[8])
}

func TestRenderer_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, config.FormatJSON)
	assert.False(t, r.isText())

	require.NoError(t, r.report(strength.Evaluate("Abcdefgh1234!@")))
	require.NoError(t, r.close())

	assert.Contains(t, buf.String(), `"strength": "Very Strong"`)
	assert.Contains(t, buf.String(), `"score": 6`)
}

func TestRenderer_TextResults(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, config.FormatText)
	assert.True(t, r.isText())

	err := r.results([]checkResult{
		{Input: 1, Report: strength.Evaluate("abc")},
		{Input: 2, Report: strength.Evaluate("Abcdef1!")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(buf.String(), "Feedback:"))
}
