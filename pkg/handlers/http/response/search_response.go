package response

import "github.com/folioworks/folio/pkg/app/search"

type SearchResponse struct {
	Query   string                     `json:"query"`
	Total   int                        `json:"total"`
	Results []search.Result            `json:"results"`
	Groups  map[string][]search.Result `json:"groups,omitempty"`
}

type SuggestResponse struct {
	Query       string              `json:"query"`
	Suggestions []search.Suggestion `json:"suggestions"`
}

type ReindexResponse struct {
	Items int `json:"items"`
}
