package feed

import "testing"

func TestEmojiForTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"West Bloomfield Exclusive", "🎉"},
		{"WEST BLOOMFIELD growth", "🎉"},
		{"Freedom to Create", "✂️"},
		{"Quick Walkthrough", "🎬"},
		{"Suite reel", "🎬"},
		{"Built for Growth", "🚀"},
		{"Taylor Location Update", "💰"},
		{"Ann Arbor Pre-Leasing Now Live", "⏳"},
		{"Quick Revenue Snapshot", "🧾"},
		{"Lease Perks", "📌"},
		{"", "📌"},
	}
	for _, tc := range cases {
		if got := EmojiForTitle(tc.title); got != tc.want {
			t.Fatalf("EmojiForTitle(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
