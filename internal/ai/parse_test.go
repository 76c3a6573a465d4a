// internal/ai/parse_test.go
package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStringArray(t *testing.T) {
	resp := "Sure! Here are your questions:\n[\"What is your favorite movie?\", \"What is your favorite dish?\"]\nEnjoy!"
	qs, err := ExtractStringArray(resp)
	require.NoError(t, err)
	assert.Equal(t, []string{"What is your favorite movie?", "What is your favorite dish?"}, qs)
}

func TestExtractStringArrayNoJSON(t *testing.T) {
	_, err := ExtractStringArray("I could not think of any questions, sorry.")
	assert.Error(t, err)
}

func TestExtractStringArraySkipsMalformedCandidate(t *testing.T) {
	// The first bracketed block is not valid JSON; the parser must not
	// treat the whole response as unusable output.
	resp := `[broken } ["Real question?"]`
	qs, err := ExtractStringArray(resp)
	require.NoError(t, err)
	assert.Equal(t, []string{"Real question?"}, qs)
}

func TestExtractQAList(t *testing.T) {
	resp := `Here you go:
[
  {"question": "Capital of France?", "answer": "Paris"},
  {"question": "Largest planet?", "answer": "Jupiter"}
]`
	qas, err := ExtractQAList(resp)
	require.NoError(t, err)
	require.Len(t, qas, 2)
	assert.Equal(t, "Capital of France?", qas[0].Prompt)
	assert.Equal(t, "Paris", qas[0].Answer)
}

func TestExtractQAListRejectsIncompleteEntries(t *testing.T) {
	_, err := ExtractQAList(`[{"question": "Capital of France?"}]`)
	assert.Error(t, err)
}

func TestExtractMatchVerdict(t *testing.T) {
	match, err := ExtractMatchVerdict(`I think {"match": true, "explanation": "same film"} covers it`)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = ExtractMatchVerdict(`{"match": false, "explanation": "different"}`)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestExtractMatchVerdictMissingField(t *testing.T) {
	// An object without a verdict is ambiguous output, never a silent match.
	_, err := ExtractMatchVerdict(`{"explanation": "hmm"}`)
	assert.Error(t, err)
}

func TestExtractMatchVerdictUsesFirstWellFormedObject(t *testing.T) {
	resp := `{"match": true, "explanation": "clear"} but then again {"match": false}`
	match, err := ExtractMatchVerdict(resp)
	require.NoError(t, err)
	assert.True(t, match, "only the first well-formed verdict counts")
}

func TestExtractCorrectVerdict(t *testing.T) {
	correct, err := ExtractCorrectVerdict(`{"correct": true}`)
	require.NoError(t, err)
	assert.True(t, correct)

	_, err = ExtractCorrectVerdict("no json at all")
	assert.Error(t, err)
}

func TestCleanComment(t *testing.T) {
	assert.Equal(t, "Alice and Bob, same brain!", CleanComment(`"Alice and Bob, same brain!"`))
	assert.Equal(t, "Alice and Bob, same brain!", CleanComment("Joke: Alice and Bob, same brain!"))
	assert.Equal(t, "nice one", CleanComment("  «nice one»  "))

	long := CleanComment(strings.Repeat("x", 200))
	assert.Equal(t, 153, len(long)) // 150 runes plus ellipsis
}
