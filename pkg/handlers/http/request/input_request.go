package request

type InputRequest struct {
	Input string `json:"input"`
}
