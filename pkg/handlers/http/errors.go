package http

const (
	ErrInvalidJsonPayload = "Invalid JSON payload"
	ErrNoInputProvided    = "No input provided"
	ErrAudioTextRequired  = "Text for audio generation is required."
	ErrAudioFailed        = "Failed to generate audio."
	ErrAudioNotFound      = "Audio file not found"
	ErrInvalidAudioName   = "Invalid audio file name"
)
