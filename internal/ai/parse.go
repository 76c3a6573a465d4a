// internal/ai/parse.go
package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxCommentLen bounds generated commentary before it is broadcast.
const maxCommentLen = 150

// firstJSONValue scans s for the first well-formed JSON value delimited by
// open/close (either '['/']' or '{'/'}'). Model output routinely wraps the
// payload in prose; everything outside the first valid value is discarded.
func firstJSONValue(s string, open, closing byte) (string, error) {
	for start := 0; start < len(s); start++ {
		if s[start] != open {
			continue
		}
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(s); i++ {
			c := s[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case open:
				depth++
			case closing:
				depth--
				if depth == 0 {
					candidate := s[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate, nil
					}
					// Malformed candidate; resume scanning after this opener.
					i = len(s)
				}
			}
		}
	}
	return "", fmt.Errorf("no well-formed %c...%c value in model output", open, closing)
}

// ExtractStringArray pulls the first JSON string array out of model output.
func ExtractStringArray(s string) ([]string, error) {
	raw, err := firstJSONValue(s, '[', ']')
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("parse question array: %w", err)
	}
	return out, nil
}

// ExtractQAList pulls the first JSON array of {question, answer} objects out
// of model output.
func ExtractQAList(s string) ([]QA, error) {
	raw, err := firstJSONValue(s, '[', ']')
	if err != nil {
		return nil, err
	}
	var out []QA
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("parse quiz array: %w", err)
	}
	for _, qa := range out {
		if qa.Prompt == "" || qa.Answer == "" {
			return nil, fmt.Errorf("quiz entry missing question or answer")
		}
	}
	return out, nil
}

// ExtractMatchVerdict pulls a {"match": bool} verdict out of model output.
// Anything ambiguous is an error, never a silent match.
func ExtractMatchVerdict(s string) (bool, error) {
	raw, err := firstJSONValue(s, '{', '}')
	if err != nil {
		return false, err
	}
	var v struct {
		Match       *bool  `json:"match"`
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return false, fmt.Errorf("parse match verdict: %w", err)
	}
	if v.Match == nil {
		return false, fmt.Errorf("match verdict missing 'match' field")
	}
	return *v.Match, nil
}

// ExtractCorrectVerdict pulls a {"correct": bool} verdict out of model output.
func ExtractCorrectVerdict(s string) (bool, error) {
	raw, err := firstJSONValue(s, '{', '}')
	if err != nil {
		return false, err
	}
	var v struct {
		Correct *bool `json:"correct"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return false, fmt.Errorf("parse correctness verdict: %w", err)
	}
	if v.Correct == nil {
		return false, fmt.Errorf("correctness verdict missing 'correct' field")
	}
	return *v.Correct, nil
}

// CleanComment normalizes a generated one-liner: wrapping quotes and
// label prefixes are stripped, and overlong output is truncated.
func CleanComment(s string) string {
	c := strings.TrimSpace(s)
	c = strings.Trim(c, `"'«»`)
	for _, prefix := range []string{"Comment:", "Joke:", "Response:", "Answer:"} {
		if rest, ok := strings.CutPrefix(c, prefix); ok {
			c = strings.TrimSpace(rest)
			break
		}
	}
	if utf8.RuneCountInString(c) > maxCommentLen {
		runes := []rune(c)
		c = string(runes[:maxCommentLen]) + "..."
	}
	return c
}
