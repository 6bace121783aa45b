package domain

import "time"

// SiteSettings is the storefront-wide configuration row.
type SiteSettings struct {
	StoreName    string    `json:"storeName"`
	Tagline      string    `json:"tagline"`
	Currency     string    `json:"currency"`
	HeroBookID   string    `json:"heroBookId,omitempty"`
	Announcement string    `json:"announcement,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DefaultSiteSettings is served whenever the settings row cannot be read.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		StoreName: "Pustak Ghar",
		Tagline:   "Books for every mood",
		Currency:  "NPR",
	}
}

// Profile is a public reader profile.
type Profile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GuestProfile is served when a profile cannot be loaded.
func GuestProfile(id string) Profile {
	return Profile{ID: id, DisplayName: "Guest reader"}
}

// GenreCount is a genre together with the number of books tagged with it.
type GenreCount struct {
	Genre string `json:"genre"`
	Books int    `json:"books"`
}
