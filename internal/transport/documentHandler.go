package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alltools-tech/true-pdf/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompressBasic - синхронное сжатие: загрузка, перекодирование
// изображений и отдача результата одним запросом
func (h *DocumentHandler) CompressBasic(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	level, err := strconv.Atoi(c.DefaultQuery("level", strconv.Itoa(h.defaultLevel)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid level"})
		return
	}

	id := uuid.New().String()

	if err := h.service.StoreOriginal(id, file, level, entity.SchemeLevel); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Compress(id, level, entity.SchemeLevel)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, entity.ErrDocumentCorrupt) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("X-Original-Size", strconv.FormatInt(result.OriginalSize, 10))
	c.Header("X-Compressed-Size", strconv.FormatInt(result.CompressedSize, 10))
	c.FileAttachment(h.service.FilePath(id, "compressed"), "compressed_"+file.Filename)
}

// UploadDocument - асинхронный путь: задача уходит в Kafka
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	quality, err := strconv.Atoi(c.DefaultQuery("quality", strconv.Itoa(h.defaultQuality)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quality"})
		return
	}

	id := uuid.New().String()

	docID, err := h.service.Upload(id, file, quality, entity.SchemePercent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, entity.UploadResponse{
		ID:     docID,
		Status: entity.StatusProcessing,
	})
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.service.GetDocument(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	response := entity.DocumentResponse{
		ID:     doc.ID,
		Status: doc.Status,
		Error:  doc.Error,
	}

	if doc.Status == entity.StatusCompleted {
		response.Result = doc.Result
	}

	c.JSON(http.StatusOK, response)
}

func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.service.GetDocument(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	if doc.Status != entity.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "Document is not ready", "status": doc.Status})
		return
	}

	c.FileAttachment(h.service.FilePath(id, "compressed"), "compressed_"+doc.Name)
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteDocument(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

// OptimizePDF - структурная оптимизация PDF без перекодирования изображений
func (h *DocumentHandler) OptimizePDF(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	id := uuid.New().String()

	if err := h.service.StoreOriginal(id, file, 0, ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.OptimizePDF(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.FileAttachment(h.service.FilePath(id, "compressed"), "optimized_"+file.Filename)
}

// PDFToImages рендерит страницы PDF в JPEG и возвращает zip-архив
func (h *DocumentHandler) PDFToImages(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	quality, err := strconv.Atoi(c.DefaultQuery("quality", "85"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quality"})
		return
	}

	id := uuid.New().String()

	if err := h.service.StoreOriginal(id, file, quality, ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.PagesToImages(id, quality); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.FileAttachment(h.service.FilePath(id, "pages"), "pages.zip")
}
