package transport

import (
	"github.com/alltools-tech/true-pdf/internal/service"
)

type DocumentHandler struct {
	service        service.CompressService
	defaultLevel   int
	defaultQuality int
}

func NewDocumentHandler(service service.CompressService, defaultLevel, defaultQuality int) *DocumentHandler {
	return &DocumentHandler{
		service:        service,
		defaultLevel:   defaultLevel,
		defaultQuality: defaultQuality,
	}
}
