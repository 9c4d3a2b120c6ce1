package request

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

type ChatRequest struct {
	Message string        `json:"message" validate:"required,max=2000"`
	History []ChatMessage `json:"history" validate:"max=50,dive"`
}

func (r *ChatRequest) Validate() error {
	return ValidateStruct(r)
}
