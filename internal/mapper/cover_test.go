package mapper

import "testing"

func TestResolveCover(t *testing.T) {
	cases := []struct {
		title, cover, want string
	}{
		{"Muna Madan", "https://cdn/any.jpg", "/covers/muna-madan.jpg"},
		{"palpasa café", "", "/covers/palpasa-cafe.jpg"},
		{"Some Unlisted Title", "https://x/y.jpg", "https://x/y.jpg"},
		{"Muna Madan 2", "https://x/z.jpg", "https://x/z.jpg"},
	}
	for _, tc := range cases {
		if got := ResolveCover(tc.title, tc.cover); got != tc.want {
			t.Fatalf("ResolveCover(%q, %q) = %q, want %q", tc.title, tc.cover, got, tc.want)
		}
	}
	if _, ok := LocalCover("Radha"); !ok {
		t.Fatalf("expected Radha to have a local cover")
	}
}
