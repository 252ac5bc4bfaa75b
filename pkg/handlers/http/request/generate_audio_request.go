package request

import "errors"

type GenerateAudioRequest struct {
	FirstText  string `json:"first_text"`
	SecondText string `json:"second_text"`
}

func (r *GenerateAudioRequest) Validate() error {
	if r.FirstText == "" {
		return errors.New("first_text is required")
	}
	return nil
}
