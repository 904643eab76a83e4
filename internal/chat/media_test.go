package chat

import "testing"

func TestKindFromPath(t *testing.T) {
	cases := []struct {
		path string
		want MediaKind
	}{
		{"files/promo.JPG", MediaPhoto},
		{"files/promo.jpeg", MediaPhoto},
		{"files/banner.png", MediaPhoto},
		{"files/clip.mp4", MediaVideo},
		{"files/clip.MOV", MediaVideo},
		{"files/voice.ogg", MediaAudio},
		{"files/track.mp3", MediaAudio},
		{"files/offer.pdf", MediaDocument},
		{"files/noext", MediaDocument},
	}
	for _, c := range cases {
		if got := KindFromPath(c.path); got != c.want {
			t.Fatalf("KindFromPath(%s) = %s, want %s", c.path, got, c.want)
		}
	}
}
