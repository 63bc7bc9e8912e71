package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cwsplatform/ecom-assist/internal/adapter"
	"github.com/cwsplatform/ecom-assist/internal/adapter/utils"
	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/rag"
)

// UploadHandler godoc
// @Summary      Upload a document into the knowledge base
// @Description  Receives a file via multipart/form-data, extracts its text and indexes it. Re-uploading a filename replaces the previous version.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF, DOCX, PPTX, MD or TXT file"
// @Success      200   {object}  api.UploadResponse "Ingestion report"
// @Failure      400   {object}  api.ErrorResponse  "Unsupported format or empty document"
// @Failure      500   {object}  api.ErrorResponse  "Storage or pipeline error"
// @Router       /upload [post]
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "addr", r.RemoteAddr)
		return
	}
	log := traceLogger(r.Context())

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		log.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, errString)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	// Originals are staged only for extraction, never kept
	tempFilePath := filepath.Join(targetDir, fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileMetadata.Filename)))
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}
	defer os.Remove(tempFilePath)

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		destinationFileWriter.Close()
		WriteErrorResponse(w, http.StatusInternalServerError, "Write error")
		return
	}
	destinationFileWriter.Close()

	report, err := ragService.IngestDocument(r.Context(), tempFilePath, fileMetadata.Filename)
	if err != nil {
		if errors.Is(err, rag.ErrUnsupportedFormat) || errors.Is(err, rag.ErrEmptyDocument) {
			WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("Ingestion failed", "filename", fileMetadata.Filename, "error", err.Error())
		WriteErrorResponse(w, http.StatusInternalServerError, "Ingestion failed")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToUploadResponse(report))
}

// ListDocumentsHandler godoc
// @Summary      List indexed documents
// @Description  Returns every document in the knowledge base with its live chunk count.
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.DocumentListResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "addr", r.RemoteAddr)
		return
	}

	infos, err := ragService.ListDocuments(r.Context())
	if err != nil {
		traceLogger(r.Context()).Error("Could not list documents", "error", err.Error())
		WriteErrorResponse(w, http.StatusInternalServerError, "Could not list documents")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentListResponse(infos))
}

// DeleteDocumentHandler godoc
// @Summary      Remove a document from the knowledge base
// @Description  Deletes every indexed chunk of the named document and drops it from the manifest.
// @Tags         Documents
// @Produce      json
// @Param        filename  path      string  true  "Document filename as listed"
// @Success      200  {object}  api.StatusResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /documents/{filename} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "addr", r.RemoteAddr)
		return
	}

	filename := utils.GetChiURLParam(r, "filename")
	if filename == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "filename is required")
		return
	}

	if err := ragService.DeleteDocument(r.Context(), filename); err != nil {
		traceLogger(r.Context()).Error("Could not delete document", "filename", filename, "error", err.Error())
		WriteErrorResponse(w, http.StatusInternalServerError, "Could not delete document")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.StatusOK(fmt.Sprintf("deleted %s", filename)))
}
