package xivapi

import "strings"

var categoryEmoji = map[string]string{
	"minions":                "🐾",
	"wall-mounted":           "🖼️",
	"paintings":              "🖼️",
	"body":                   "👕",
	"interior fixtures":      "🏠",
	"outdoor furnishings":    "🏠",
	"exterior fixtures":      "🏠",
	"materia":                "🔴",
	"crafting material":      "🛠️",
	"rings":                  "💍",
	"consumable":             "🍴",
	"furnishings":            "🛋️",
	"tabletop":               "🛋️",
	"rugs":                   "🛋️",
	"tables":                 "🛋️",
	"weapon":                 "⚔️",
	"weapon parts":           "⚔️",
	"armor":                  "🛡️",
	"armor parts":            "🛡️",
	"shields":                "🛡️",
	"seafood":                "🍣",
	"fish":                   "🐟",
	"gardening items":        "🌱",
	"dyes":                   "🎨",
	"mount":                  "🐴",
	"orchestrion roll":       "🎵",
	"mineral":                "⛏️",
	"stone":                  "🪨",
	"metal":                  "🧱",
	"chairs and beds":        "🛏️",
	"leather":                "💼",
	"meals":                  "🍱",
	"cloth":                  "🧵",
	"cloths":                 "🧵",
	"heads":                  "👒",
	"head":                   "👒",
	"hands":                  "👐",
	"hand":                   "👐",
	"legs":                   "👖",
	"bone":                   "🦴",
	"bones":                  "🦴",
	"feet":                   "👠",
	"bracelets":              "💍",
	"bracelet":               "💍",
	"earrings":               "💍",
	"earring":                "💍",
	"necklaces":              "📿",
	"lumber":                 "🪵",
	"registrable miscellany": "🃏",
	"fishing tackle":         "🎣",
	"orchestrion components": "🎵",
	"miscellany":             "🛒",
	"miscellaneous":          "❓",
}

// emojiForCategory tags an item with a display emoji based on its
// search category name.
func emojiForCategory(category string) string {
	name := strings.ToLower(category)

	switch {
	case strings.Contains(name, "'s tools"):
		return "🔧"
	case strings.Contains(name, "'s arms"):
		return "⚔️"
	case strings.HasPrefix(name, "ingredients"):
		return "🥕"
	case strings.HasPrefix(name, "reagent"), name == "medicine":
		return "⚗️"
	case strings.HasPrefix(name, "catalyst"):
		return "🪨"
	case strings.HasPrefix(name, "crystal"):
		return "🔮"
	}

	if emoji, ok := categoryEmoji[name]; ok {
		return emoji
	}
	return "❓"
}
