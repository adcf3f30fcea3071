package content

// Article is one editorial card. All fields are defaulted by the normalizer;
// a zero-value Article never reaches the renderer.
type Article struct {
	Title   string
	Summary string
	Link    string
}

// Podcast is one playable episode card. AudioURL is mandatory: items without a
// playable source are skipped during normalization, never rendered broken.
type Podcast struct {
	Title       string
	Description string
	AudioURL    string
}
