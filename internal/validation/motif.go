package validation

import "strings"

// MentionUsage classifies how a quoted passage uses the tracked motif.
type MentionUsage string

const (
	// UsageDraw is the valid usage: the motif draws or anchors.
	UsageDraw MentionUsage = "draw"
	// UsageTool is the invalid usage: the motif is wielded as an active tool.
	UsageTool MentionUsage = "tool"
	// UsageUnclear matched neither lexicon.
	UsageUnclear MentionUsage = "unclear"
)

// drawWords mark a valid draw/anchor usage.
var drawWords = []string{
	"desire",
	"drawn",
	"longing",
	"pull",
	"ache",
	"yearn",
}

// toolWords mark an invalid active-tool usage. Tool words take priority over
// draw words when both appear in the same passage.
var toolWords = []string{
	"wearing",
	"wields",
	"wield",
	"using",
	"puts on",
	"equipped",
}

// ClassifyMention lexically classifies a quoted passage. Only UsageTool is a
// misuse; it is the classification that sets an annotation's flagged bit.
func ClassifyMention(text string) MentionUsage {
	lower := strings.ToLower(text)

	for _, w := range toolWords {
		if strings.Contains(lower, w) {
			return UsageTool
		}
	}
	for _, w := range drawWords {
		if strings.Contains(lower, w) {
			return UsageDraw
		}
	}
	return UsageUnclear
}

// FlagMention reports whether a quoted passage is a motif misuse.
func FlagMention(text string) bool {
	return ClassifyMention(text) == UsageTool
}
