package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cwsplatform/ecom-assist/internal/adapter"
	"github.com/cwsplatform/ecom-assist/internal/api"
	"github.com/cwsplatform/ecom-assist/internal/config"
)

// ChatHandler godoc
// @Summary      Ask the support assistant a question
// @Description  Embeds the question, retrieves matching documentation chunks and returns a grounded answer. Callers keep conversation continuity by passing the same session_id.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest   true  "Question and optional session id"
// @Success      200      {object}  api.ChatResponse  "Assistant answer"
// @Failure      400      {object}  api.ErrorResponse "Empty or malformed message"
// @Router       /chat [post]
func ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "addr", r.RemoteAddr)
		return
	}
	log := traceLogger(r.Context())

	var requestData api.ChatRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Error("Couldn't close the Chat handler reader :", "error", err)
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.Message) == "" {
		log.Warn("Bad Chat Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	sessionID := requestData.SessionID
	if sessionID == "" {
		sessionID = config.GuestSessionID
	}

	answer, err := ragService.Chat(r.Context(), sessionID, requestData.Message)
	if err != nil {
		// A visitor asking about shipping never sees a stack trace
		log.Error("Chat pipeline failed", "error", err.Error())
		writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(config.ApologyMessage))
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(answer))
}
