package providers

import "strings"

type CompletionResponse struct {
	ID       string `json:"id"`
	Model    string `json:"model"`
	Response string `json:"response"`
	Usage    Usage  `json:"usage"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Text returns the completion with surrounding whitespace removed.
func (r *CompletionResponse) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Response)
}
