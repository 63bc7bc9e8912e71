package api

type ChatResponse struct {
	Response string `json:"response" example:"You can configure shipping zones under Settings."`
}

type UploadResponse struct {
	Status       string `json:"status" example:"success"`
	Filename     string `json:"filename" example:"manual.pdf"`
	Chunks       int    `json:"chunks" example:"42"`
	ChunksFailed int    `json:"chunks_failed,omitempty" example:"0"`
}

type DocumentEntry struct {
	Name  string `json:"name" example:"manual.pdf"`
	Count uint64 `json:"count" example:"42"`
}

type DocumentListResponse struct {
	Documents []DocumentEntry `json:"documents"`
}

type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Bad Request"`
}

// requests---------------------

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"session_id,omitempty"`
}
