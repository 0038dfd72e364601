package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/tcolgate/mp3"
)

// ErrNoMP3Frames indicates that no MPEG audio frame could be decoded from a file.
var ErrNoMP3Frames = errors.New("no MP3 frames found")

// MP3DurationByFrames decodes every MPEG frame of the file and sums their durations.
// It returns ErrNoMP3Frames when the file contains no decodable frame.
func MP3DurationByFrames(path string) (time.Duration, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, err
	}

	defer f.Close() //nolint:errcheck // Read-only file, error on close is not critical.

	var (
		decoder = mp3.NewDecoder(f)
		frame   mp3.Frame
		skipped int
		frames  int
		total   time.Duration
	)

	for {
		if err = decoder.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}

			return 0, err
		}

		frames++
		total += frame.Duration()
	}

	if frames == 0 {
		return 0, ErrNoMP3Frames
	}

	return total, nil
}
