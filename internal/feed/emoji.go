package feed

import "strings"

type emojiRule struct {
	keywords []string
	emoji    string
}

// Checked in order; the first rule with a matching keyword wins.
var emojiRules = []emojiRule{
	{[]string{"west bloomfield"}, "🎉"},
	{[]string{"freedom"}, "✂️"},
	{[]string{"walkthrough", "reel"}, "🎬"},
	{[]string{"growth"}, "🚀"},
	{[]string{"taylor"}, "💰"},
	{[]string{"ann arbor"}, "⏳"},
	{[]string{"revenue"}, "🧾"},
}

// DefaultEmoji is used when no rule matches.
const DefaultEmoji = "📌"

// EmojiForTitle picks the badge shown beside a post title.
func EmojiForTitle(title string) string {
	t := strings.ToLower(title)
	for _, r := range emojiRules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.emoji
			}
		}
	}
	return DefaultEmoji
}
