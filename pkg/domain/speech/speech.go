package speech

import "context"

//go:generate mockery --name=Synthesizer --dir=. --output=./mocks --filename=synthesizer_mock.go --case=underscore --with-expecter
type Synthesizer interface {
	// Synthesize returns mp3 audio for text spoken with voice.
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

//go:generate mockery --name=AudioStore --dir=. --output=./mocks --filename=audio_store_mock.go --case=underscore --with-expecter
type AudioStore interface {
	// Save persists audio and returns the generated file name.
	Save(ctx context.Context, audio []byte) (string, error)
	// Path resolves a file name previously returned by Save.
	Path(name string) (string, error)
}
