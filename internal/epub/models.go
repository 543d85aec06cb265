package epub

// Metadata represents the book-level metadata read from the OPF
type Metadata struct {
	Title    string
	Creator  string
	Language string
	CoverID  string // EPUB 2.0 cover image manifest item ID (from meta name="cover")
}

// ManifestItem represents an item in the manifest
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties []string
}

// SpineItem represents an item reference in the spine
type SpineItem struct {
	IDRef  string
	Linear bool
}

// FlowEntry represents one chapter in the book's linear reading order.
// Title is taken from the NCX navigation document when a nav point
// references the chapter file; it is empty otherwise.
type FlowEntry struct {
	ID    string
	Href  string
	Title string
}
