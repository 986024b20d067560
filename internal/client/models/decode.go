package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// flexString accepts either a JSON string or a JSON number. The backend
// returns numeric ids in some listings and string ids in others.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexTags accepts either a JSON string array or a single comma-separated
// string (the legacy tags representation).
type flexTags []string

func (t *flexTags) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = nil
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*t = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*t = out
	return nil
}

// RawSearchItem mirrors one raw search hit as the backend sends it. Each
// concept may arrive under its canonical name or under one or more legacy
// aliases; Canonical applies the precedence rules. Unknown fields are
// dropped by encoding/json.
type RawSearchItem struct {
	ID    flexString `json:"id"`
	Title string     `json:"title"`

	ResourceType      string `json:"resourceType"`
	ResourceTypeSnake string `json:"resource_type"`
	Type              string `json:"type"`

	Subject  string `json:"subject"`
	Semester string `json:"semester"`

	Preview     string `json:"preview"`
	Description string `json:"description"`

	PrimaryFileRef string `json:"primaryFileRef"`
	FirstFileURL   string `json:"first_file_url"`
	FileURL        string `json:"fileUrl"`
	FileURLSnake   string `json:"file_url"`

	Owner     string `json:"owner"`
	OwnerName string `json:"owner_name"`

	Rating    float64 `json:"rating"`
	AvgRating float64 `json:"avg_rating"`

	RatingCount      int `json:"ratingCount"`
	RatingCountSnake int `json:"rating_count"`

	DownloadCount  int `json:"downloadCount"`
	TotalDownloads int `json:"total_downloads"`
	DownloadsCount int `json:"downloads_count"`
	Downloads      int `json:"downloads"`

	Tags flexTags `json:"tags"`
}

// Canonical maps a raw item to the canonical SearchResult. The mapping is
// pure and total: for every concept the canonical field name wins, then the
// snake_case legacy name, then the shortest legacy alias. Mapping an
// already-canonical item yields the same value.
func (r RawSearchItem) Canonical() SearchResult {
	return SearchResult{
		ID:             string(r.ID),
		Title:          r.Title,
		ResourceType:   lo.CoalesceOrEmpty(r.ResourceType, r.ResourceTypeSnake, r.Type),
		Subject:        r.Subject,
		Semester:       r.Semester,
		Preview:        lo.CoalesceOrEmpty(r.Preview, r.Description),
		PrimaryFileRef: lo.CoalesceOrEmpty(r.PrimaryFileRef, r.FirstFileURL, r.FileURL, r.FileURLSnake),
		Owner:          lo.CoalesceOrEmpty(r.Owner, r.OwnerName),
		Rating:         lo.CoalesceOrEmpty(r.Rating, r.AvgRating),
		RatingCount:    lo.CoalesceOrEmpty(r.RatingCount, r.RatingCountSnake),
		DownloadCount:  lo.CoalesceOrEmpty(r.DownloadCount, r.TotalDownloads, r.DownloadsCount, r.Downloads),
		Tags:           r.Tags,
	}
}

// searchEnvelope is the wrapped variant of the search response.
type searchEnvelope struct {
	Results []RawSearchItem `json:"results"`
}

// DecodeSearchResponse parses a search response body, which may be either a
// bare JSON array of items or an envelope object carrying a "results" array,
// and maps every item to its canonical shape.
func DecodeSearchResponse(data []byte) ([]SearchResult, error) {
	var items []RawSearchItem
	if err := json.Unmarshal(data, &items); err != nil {
		var env searchEnvelope
		if envErr := json.Unmarshal(data, &env); envErr != nil {
			return nil, fmt.Errorf("unexpected search response shape: %w", err)
		}
		items = env.Results
	}

	return lo.Map(items, func(item RawSearchItem, _ int) SearchResult {
		return item.Canonical()
	}), nil
}
