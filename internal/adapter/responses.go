package adapter

import (
	"github.com/cwsplatform/ecom-assist/internal/api"
	"github.com/cwsplatform/ecom-assist/internal/domain/commonModels"
)

func ToChatResponse(answer string) api.ChatResponse {
	return api.ChatResponse{Response: answer}
}

func ToUploadResponse(report commonModels.IngestReport) api.UploadResponse {
	return api.UploadResponse{
		Status:       "success",
		Filename:     report.Filename,
		Chunks:       report.Stored,
		ChunksFailed: report.Failed,
	}
}

func ToDocumentListResponse(infos []commonModels.DocumentInfo) api.DocumentListResponse {
	entries := make([]api.DocumentEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, api.DocumentEntry{Name: info.Name, Count: info.Chunks})
	}
	return api.DocumentListResponse{Documents: entries}
}

func StatusOK(message string) api.StatusResponse {
	return api.StatusResponse{Status: "success", Message: message}
}

func BadRequest(code int, message string) api.ErrorResponse {
	return api.ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: message,
	}
}
