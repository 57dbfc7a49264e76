package common

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

const fence = "```"

var stringListPattern = regexp.MustCompile(`\[\s*"[^"]*"(?:\s*,\s*"[^"]*")*\s*\]`)

// StripCodeFence returns the body of the first markdown code block in
// response, without a leading language tag such as "tsv" or "json".
// Responses without a fence are returned trimmed.
func StripCodeFence(response string, lang string) string {
	if !strings.Contains(response, fence) {
		return strings.TrimSpace(response)
	}
	body := strings.TrimSpace(strings.Split(response, fence)[1])
	if lang != "" && strings.HasPrefix(strings.ToLower(body), lang) {
		body = strings.TrimSpace(body[len(lang):])
	}
	return body
}

// ParseJSON cleans and unmarshals a JSON object string into a type T.
// It handles common LLM quirks like surrounding markdown or extra text.
func ParseJSON[T any](response string) (T, error) {
	return parseDelimited[T](response, '{', '}')
}

// ParseJSONArray is ParseJSON for responses holding a top-level JSON array.
func ParseJSONArray[T any](response string) ([]T, error) {
	return parseDelimited[[]T](StripCodeFence(response, "json"), '[', ']')
}

// ParseStringList extracts a JSON list of strings from an LLM response. A
// fenced block wins; otherwise the first inline list of quoted strings is used.
func ParseStringList(response string) ([]string, error) {
	candidate := strings.TrimSpace(response)
	if strings.Contains(response, fence) {
		candidate = StripCodeFence(response, "json")
	} else if match := stringListPattern.FindString(response); match != "" {
		candidate = match
	}

	var out []string
	if err := json.Unmarshal([]byte(candidate), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal string list: %w\nData: %s", err, candidate)
	}
	return out, nil
}

func parseDelimited[T any](response string, open, close byte) (T, error) {
	var zero T

	start := strings.IndexByte(response, open)
	end := strings.LastIndexByte(response, close)
	if start == -1 {
		return zero, fmt.Errorf("no JSON value found in response (missing '%c')", open)
	}
	jsonStr := response
	if end != -1 && start < end {
		jsonStr = response[start : end+1]
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}
