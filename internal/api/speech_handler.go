package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "genesis-ai/backend/internal/errors"
	"genesis-ai/backend/internal/interfaces"
)

// maxAudioUpload bounds the multipart form kept in memory.
const maxAudioUpload = 32 << 20

// SpeechHandler serves speech-to-text and text-to-speech.
type SpeechHandler struct {
	speech interfaces.SpeechService
}

func NewSpeechHandler(speech interfaces.SpeechService) *SpeechHandler {
	return &SpeechHandler{speech: speech}
}

// HandleSpeechToText godoc
// @Summary      Transcribe an audio clip
// @Tags         speech
// @Accept       mpfd
// @Produce      json
// @Param        api-key   header    string  true  "Backend API key"
// @Param        language  header    string  true  "Recognition locale, e.g. pt-PT"
// @Param        file      formData  file    true  "Audio clip"
// @Success      200  {object}  service.Transcript
// @Failure      400  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  map[string]string
// @Router       /genesisai-speech [post]
func (h *SpeechHandler) HandleSpeechToText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		respondWithStatus(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithStatus(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	language := r.Header.Get(languageHeader)
	if language == "" {
		respondWithStatus(w, http.StatusBadRequest, "No language header provided")
		return
	}

	contentType := header.Header.Get("Content-Type")
	slog.Info("Transcribing audio", "filename", header.Filename, "size", header.Size, "language", language)

	transcript, err := h.speech.SpeechToText(r.Context(), file, contentType, language)
	if err != nil {
		if errors.Is(err, app_errors.ErrValidation) {
			respondWithStatus(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithOperationError(w, "speech to text", err)
		return
	}
	respondWithJSON(w, http.StatusOK, transcript)
}

// HandleTextToSpeech godoc
// @Summary      Synthesize speech
// @Description  An empty voice_name picks the default voice of the language.
// @Tags         speech
// @Accept       json
// @Produce      audio/mpeg
// @Param        api-key  header  string                  true  "Backend API key"
// @Param        request  body    TextToSpeechRequestDTO  true  "Text"
// @Success      200  {file}    binary
// @Failure      400  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  map[string]string
// @Router       /genesisai-text-to-speech [post]
func (h *SpeechHandler) HandleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	var dto TextToSpeechRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Text == "" {
		respondWithStatus(w, http.StatusBadRequest, "No text provided")
		return
	}
	if dto.Language == "" {
		respondWithStatus(w, http.StatusBadRequest, "No language provided")
		return
	}

	audio, err := h.speech.TextToSpeech(r.Context(), dto.Text, dto.Language, dto.VoiceName)
	if err != nil {
		respondWithOperationError(w, "text to speech", err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `inline; filename="speech.mp3"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		slog.Warn("Failed to write audio response", "error", err)
	}
}
