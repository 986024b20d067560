// Package models defines the canonical client-side types for the ResourceHub
// API together with the decode step that normalizes the backend's legacy
// response shapes into them.
package models

// SearchResult is the canonical shape of one typeahead search hit. The JSON
// tags define the canonical field names; every legacy alias the backend may
// emit resolves to exactly one of these fields (see RawSearchItem).
type SearchResult struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	ResourceType   string   `json:"resourceType"`
	Subject        string   `json:"subject,omitempty"`
	Semester       string   `json:"semester,omitempty"`
	Preview        string   `json:"preview,omitempty"`
	PrimaryFileRef string   `json:"primaryFileRef,omitempty"`
	Owner          string   `json:"owner,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	RatingCount    int      `json:"ratingCount,omitempty"`
	DownloadCount  int      `json:"downloadCount,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}
