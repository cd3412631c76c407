package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-audio/wav"
)

const (
	// PCMContentType describes the audio Convert produces.
	PCMContentType = "audio/wav; codecs=audio/pcm; samplerate=16000"
	pcmSampleRate  = 16000
)

// ErrUndecodable is returned when an upload is not audio that can be decoded.
var ErrUndecodable = errors.New("speech: audio could not be decoded")

// Clip is an upload re-encoded for recognition.
type Clip struct {
	WAV      []byte
	Duration time.Duration
}

// FFmpegConverter re-encodes uploads as 16 kHz mono 16-bit PCM WAV with the
// ffmpeg binary at Path. The input container is detected from the content, so
// a mislabelled upload still converts.
type FFmpegConverter struct {
	Path string
}

func NewFFmpegConverter(path string) *FFmpegConverter {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpegConverter{Path: path}
}

// Convert decodes audio and measures the result. ffmpeg writes to a file
// rather than stdout so the WAV header carries the real data size.
func (c *FFmpegConverter) Convert(ctx context.Context, audio io.Reader) (*Clip, error) {
	dir, err := os.MkdirTemp("", "genesis-audio-*")
	if err != nil {
		return nil, fmt.Errorf("could not create work directory: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "upload")
	output := filepath.Join(dir, "clip.wav")
	if err := writeFile(input, audio); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, c.Path,
		"-hide_banner", "-loglevel", "error", "-nostdin", "-y",
		"-i", input,
		"-vn", "-ac", "1", "-ar", strconv.Itoa(pcmSampleRate), "-acodec", "pcm_s16le",
		"-f", "wav", output,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %s", ErrUndecodable, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("ffmpeg failed: %w", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return nil, fmt.Errorf("could not read converted audio: %w", err)
	}
	length, err := ClipDuration(data)
	if err != nil {
		return nil, err
	}
	return &Clip{WAV: data, Duration: length}, nil
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not buffer audio: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("could not buffer audio: %w", err)
	}
	return f.Close()
}

// ClipDuration is the playing time of a PCM WAV file, counted in sample
// frames. Leading and trailing silence count.
func ClipDuration(data []byte) (time.Duration, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return 0, fmt.Errorf("%w: not a PCM WAV file", ErrUndecodable)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return 0, fmt.Errorf("could not read samples: %w", err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return 0, fmt.Errorf("%w: missing sample rate", ErrUndecodable)
	}
	return time.Duration(buf.NumFrames()) * time.Second / time.Duration(buf.Format.SampleRate), nil
}
