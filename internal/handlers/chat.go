package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"quick-chat-relay/internal/models"
)

const maxBodyBytes = 1 << 20

type replyGenerator interface {
	GenerateReply(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	generator       replyGenerator
	maxMessageChars int
}

// NewChatHandler wires the generator used for every request. A maxMessageChars
// of zero disables the length check.
func NewChatHandler(generator replyGenerator, maxMessageChars int) *ChatHandler {
	return &ChatHandler{
		generator:       generator,
		maxMessageChars: maxMessageChars,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	if msg := h.validate(req); msg != "" {
		writeDetail(w, http.StatusUnprocessableEntity, msg)
		return
	}

	reply, err := h.generator.GenerateReply(r.Context(), *req.Message)
	if err != nil {
		log.Printf("chat: generation failed (request_id=%s): %v", r.Header.Get("X-Request-ID"), err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

func (h *ChatHandler) validate(req models.ChatRequest) string {
	if req.Message == nil {
		return "Field 'message' is required"
	}
	if strings.TrimSpace(*req.Message) == "" {
		return "Message must not be empty"
	}
	if h.maxMessageChars > 0 && utf8.RuneCountInString(*req.Message) > h.maxMessageChars {
		return fmt.Sprintf("Message exceeds %d characters", h.maxMessageChars)
	}
	return ""
}
