package transcription

import (
	"context"
	"io"
)

// MockClient returns a fixed two-speaker interview (STT_PROVIDER=mock).
type MockClient struct{}

func NewMockClient() *MockClient { return &MockClient{} }

func (MockClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	segments := []Segment{
		{Start: 0, End: 4.2, Speaker: "Speaker A", Text: "Thanks for joining. Can you walk me through a recent project?"},
		{Start: 4.8, End: 16.5, Speaker: "Speaker B", Text: "Sure, um, I led the migration of our billing service and I am really proud of how the team delivered it."},
		{Start: 17.0, End: 21.3, Speaker: "Speaker A", Text: "Great. What was the hardest part?"},
		{Start: 21.9, End: 33.0, Speaker: "Speaker B", Text: "Honestly, uh, coordinating the cutover. We planned it carefully and it went well."},
	}
	return Result{
		Text:     FormatTranscript(segments),
		Segments: segments,
		Language: "en",
	}, nil
}
