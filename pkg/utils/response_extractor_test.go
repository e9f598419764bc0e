package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "tagged fence",
			raw:  "Here is your plan:\n```json\n[{\"day\":1}]\n```\nEnjoy!",
			want: `[{"day":1}]`,
		},
		{
			name: "tagged fence with CRLF",
			raw:  "```json\r\n[]\r\n```",
			want: `[]`,
		},
		{
			name: "untagged fence",
			raw:  "Plan:\n```\n[{\"day\":2}]\n```",
			want: "\n[{\"day\":2}]\n",
		},
		{
			name: "tagged fence wins over an earlier untagged one",
			raw:  "```\nnot this\n```\nand\n```json\n[1]\n```",
			want: `[1]`,
		},
		{
			name: "first of several tagged fences",
			raw:  "```json\n[\"first\"]\n```\n```json\n[\"second\"]\n```",
			want: `["first"]`,
		},
		{
			name: "no fence returns input unchanged",
			raw:  `[{"day":1,"theme":"x","activities":[]}]`,
			want: `[{"day":1,"theme":"x","activities":[]}]`,
		},
		{
			name: "prose only",
			raw:  "Sorry, I cannot help with that.",
			want: "Sorry, I cannot help with that.",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONPayload(tt.raw))
		})
	}
}
