package utils

import (
	"regexp"
)

var (
	// Tagged fences need a newline after the tag, which keeps ```jsonc or
	// ```json5 from being read as json.
	taggedJSONFence = regexp.MustCompile("(?s)```json[ \\t]*\\r?\\n(.*?)\\r?\\n?```")
	anyFence        = regexp.MustCompile("(?s)```(.*?)```")
)

// ExtractJSONPayload pulls the JSON candidate out of a model reply. The first
// ```json block wins, then the first untagged ``` block, and if the reply has
// no fence at all it is returned unchanged for the decoder to judge.
func ExtractJSONPayload(raw string) string {
	if m := taggedJSONFence.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := anyFence.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}
