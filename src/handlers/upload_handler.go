package handlers

import (
	"fmt"
	"net/http"

	"github.com/username/budgetfolio/backend/src/config"
	"github.com/username/budgetfolio/backend/src/logger"
	"github.com/username/budgetfolio/backend/src/security/validation"
	"github.com/username/budgetfolio/backend/src/services"
	"github.com/username/budgetfolio/backend/src/utils"
)

type UploadHandler struct {
	importService services.ImportService
}

func NewUploadHandler(importService services.ImportService) *UploadHandler {
	return &UploadHandler{importService: importService}
}

// HandleUpload ingests one bank statement file. The multipart form carries a
// 'source' field naming the parser and a 'file' field with the statement.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	source := r.FormValue("source")
	if source == "" {
		source = "csv"
	}
	account := r.FormValue("account")
	if account == "" {
		account = config.Cfg.DefaultImportAccount
	}
	ctxLogger.Info("Received statement upload", "source", source, "account", account)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := validation.ValidateFileContentByMagicBytes(file); err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.importService.ImportStatement(file, source, fileHeader.Filename, fileHeader.Size, account)
	if err != nil {
		ctxLogger.Error("Statement import failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}
