package request

import "strings"

type SearchRequest struct {
	Q     string `json:"q" validate:"max=256"`
	Group string `json:"group" validate:"omitempty,oneof=type category"`
}

func (r *SearchRequest) Validate() error {
	r.Group = strings.ToLower(strings.TrimSpace(r.Group))
	return ValidateStruct(r)
}
