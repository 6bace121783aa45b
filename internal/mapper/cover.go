package mapper

import "strings"

// coverOverrides maps a normalised title to a locally hosted cover image.
// Entries are matched on the exact lowercased, trimmed title.
var coverOverrides = map[string]string{
	"muna madan":      "/covers/muna-madan.jpg",
	"palpasa café":    "/covers/palpasa-cafe.jpg",
	"seto dharti":     "/covers/seto-dharti.jpg",
	"karnali blues":   "/covers/karnali-blues.jpg",
	"shirishko phool": "/covers/shirishko-phool.jpg",
	"summer love":     "/covers/summer-love.jpg",
	"radha":           "/covers/radha.jpg",
}

// ResolveCover returns the local cover for a known title, otherwise coverURL
// unchanged.
func ResolveCover(title, coverURL string) string {
	if local, ok := coverOverrides[normaliseTitle(title)]; ok {
		return local
	}
	return coverURL
}

// LocalCover reports the local asset path for title, if one is registered.
func LocalCover(title string) (string, bool) {
	local, ok := coverOverrides[normaliseTitle(title)]
	return local, ok
}

func normaliseTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
