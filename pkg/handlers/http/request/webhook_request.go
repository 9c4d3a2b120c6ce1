package request

import "encoding/json"

type CreateWebhookRequest struct {
	URL    string   `json:"url" validate:"required,max=2048"`
	Events []string `json:"events" validate:"required,min=1,dive,required"`
}

// Validate only checks shape. URL scheme and event names are checked by the
// webhook service so CLI and HTTP callers get the same errors.
func (r *CreateWebhookRequest) Validate() error {
	return ValidateStruct(r)
}

type TriggerWebhookRequest struct {
	Event string          `json:"event" validate:"required"`
	Data  json.RawMessage `json:"data"`
}

func (r *TriggerWebhookRequest) Validate() error {
	return ValidateStruct(r)
}
