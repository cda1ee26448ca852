package brace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

func TestParse_EmbeddedDocument(t *testing.T) {
	outcome, err := New().Parse(`garbage {"a":1,"b":2} trailing`)

	require.NoError(t, err)
	assert.Equal(t, domain.ParseModeBraceHeuristic, outcome.Mode)
	assert.Equal(t, domain.PayloadDocument, outcome.Payload.Kind())
	assert.JSONEq(t, `{"a":1,"b":2}`, string(outcome.Payload.Document()))
}

func TestParse_LogPrefixedMultilineDocument(t *testing.T) {
	stdout := "Checking health of all attached hard drives...\n" +
		"{\n" +
		"    \"drives\": [\n" +
		"        {\"device\": \"/dev/sda\", \"healthStatus\": \"PASSED\"}\n" +
		"    ]\n" +
		"}\n"

	outcome, err := New().Parse(stdout)

	require.NoError(t, err)
	assert.JSONEq(t, `{"drives":[{"device":"/dev/sda","healthStatus":"PASSED"}]}`,
		string(outcome.Payload.Document()))
}

func TestParse_NoBrace(t *testing.T) {
	_, err := New().Parse("no json here")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOutputParse)
	assert.NotErrorIs(t, err, domain.ErrNoMatch)
	assert.Contains(t, err.Error(), "JSON start not found")
}

func TestParse_Malformed(t *testing.T) {
	_, err := New().Parse(`prefix {"a": 1,`)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOutputParse)
}

func TestParse_Empty(t *testing.T) {
	_, err := New().Parse("")

	assert.ErrorIs(t, err, domain.ErrOutputParse)
}
