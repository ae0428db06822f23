package emoji

import (
	"sync/atomic"

	"github.com/yildizm/ingredient-copilot/internal/common"
)

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":          {"❌", "[ERR]"},
	"warning":        {"⚠️", "[WRN]"},
	"info":           {"ℹ️", "[INF]"},
	"success":        {"✅", "[OK]"},
	"intent":         {"🎯", "[>]"},
	"stands_out":     {"🔍", "[!]"},
	"why":            {"💡", "[WHY]"},
	"uncertain":      {"❓", "[?]"},
	"recommendation": {"🧭", "[REC]"},
	"sample":         {"🛒", "[*]"},
	"loading":        {"🧠", "[..]"},
	"copilot":        {"🥗", "[IC]"},
	"server":         {"🚀", "[SRV]"},
	"watch":          {"👀", "[W]"},
	"config":         {"📄", "[CFG]"},
	"folder":         {"📁", "[DIR]"},
	"help":           {"⌨️", "[KEYS]"},
	"door":           {"🚪", "[EXIT]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled.Load() {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// ForSection returns the marker for one result section
func ForSection(key common.SectionKey) string {
	switch key {
	case common.SectionInferredIntent:
		return GetEmoji("intent")
	case common.SectionWhatStandsOut:
		return GetEmoji("stands_out")
	case common.SectionWhyItMatters:
		return GetEmoji("why")
	case common.SectionUncertainty:
		return GetEmoji("uncertain")
	case common.SectionRecommendation:
		return GetEmoji("recommendation")
	default:
		return GetEmoji("info")
	}
}
