package llm

import (
	"encoding/json"
	"strings"
)

// StringList decodes either a JSON array of strings or a bare string.
// Models occasionally collapse a single-element list into a plain string;
// treating that as a one-element list keeps the word usable.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = StringList{single}
	return nil
}

// CleanPayload trims whitespace, drops empty entries and removes
// case-insensitive duplicates from the payload's lists, keeping the first
// casing seen. The definition is trimmed in place.
func CleanPayload(p Payload) Payload {
	return Payload{
		Definition:  strings.TrimSpace(p.Definition),
		Examples:    cleanList(p.Examples),
		Distractors: cleanList(p.Distractors),
	}
}

func cleanList(items StringList) StringList {
	cleaned := make(StringList, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		text := strings.TrimSpace(item)
		if text == "" {
			continue
		}
		key := strings.ToLower(text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, text)
	}
	return cleaned
}

// Lookup finds the entry for word in a model response map, retrying
// case-insensitively when the exact key is absent. Models sometimes echo
// the word back with different casing.
func Lookup[T any](results map[string]T, word string) (T, bool) {
	if v, ok := results[word]; ok {
		return v, true
	}
	lower := strings.ToLower(word)
	for k, v := range results {
		if strings.ToLower(k) == lower {
			return v, true
		}
	}
	var zero T
	return zero, false
}
