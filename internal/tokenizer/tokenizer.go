// Package tokenizer counts tokens under the target model's BPE encoding. Every
// stage that calls the model uses it to keep prompt and completion costs.
package tokenizer

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultModel is the tokenizer used when none is configured.
const DefaultModel = "gpt-4o"

// ErrUnavailable is returned when the encoding for a model cannot be loaded.
var ErrUnavailable = errors.New("tokenizer: encoding unavailable")

// Counter counts tokens in a text. Implementations must be deterministic and
// safe for concurrent use.
type Counter interface {
	Count(text string) int
}

// TiktokenCounter is a Counter backed by tiktoken-go.
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// New loads the encoding for model.
func New(model string) (*TiktokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, model, err)
	}
	return &TiktokenCounter{encoding: encoding}, nil
}

// Count returns the number of tokens in text. Invalid UTF-8 means some upstream
// decoding is broken, so it panics instead of returning a wrong count.
func (c *TiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	if !utf8.ValidString(text) {
		panic("tokenizer: text is not valid UTF-8")
	}
	return len(c.encoding.Encode(text, nil, nil))
}
