package domain

import "strings"

// Mood is a thematic browsing tag.
type Mood struct {
	Slug        string `json:"slug"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Moods is the fixed browsing catalogue.
var Moods = []Mood{
	{Slug: "cozy", Label: "Cozy", Description: "Warm, gentle reads for a quiet evening"},
	{Slug: "adventurous", Label: "Adventurous", Description: "Journeys, quests and far-off places"},
	{Slug: "romantic", Label: "Romantic", Description: "Love stories old and new"},
	{Slug: "melancholic", Label: "Melancholic", Description: "Bittersweet stories that linger"},
	{Slug: "thoughtful", Label: "Thoughtful", Description: "Ideas to chew on"},
	{Slug: "uplifting", Label: "Uplifting", Description: "Hopeful books that leave you lighter"},
	{Slug: "mysterious", Label: "Mysterious", Description: "Secrets, puzzles and suspense"},
}

// LookupMood finds a mood by slug, case-insensitively.
func LookupMood(slug string) (Mood, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, m := range Moods {
		if m.Slug == slug {
			return m, true
		}
	}
	return Mood{}, false
}
