package entity

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	SchemeLevel   = "level"   // грубая шкала 0-3
	SchemePercent = "percent" // процентная шкала 10-100
)

type Document struct {
	ID      string             `json:"id"`
	Name    string             `json:"name,omitempty"`
	Status  string             `json:"status"`
	Quality int                `json:"quality"`
	Scheme  string             `json:"scheme"`
	Result  *CompressionResult `json:"result,omitempty"`
	Error   string             `json:"error,omitempty"`
}

type CompressionResult struct {
	OriginalSize   int64   `json:"original_size"`
	CompressedSize int64   `json:"compressed_size"`
	Ratio          float64 `json:"ratio"`
	SavedBytes     int64   `json:"saved_bytes"`
}

// CalculateRatio вычисляет коэффициент сжатия в процентах
func (r *CompressionResult) CalculateRatio() {
	if r.OriginalSize > 0 {
		r.Ratio = (float64(r.OriginalSize) - float64(r.CompressedSize)) / float64(r.OriginalSize) * 100
		r.SavedBytes = r.OriginalSize - r.CompressedSize
	}
}

type CompressionTask struct {
	DocumentID string `json:"document_id"`
	Quality    int    `json:"quality"`
	Scheme     string `json:"scheme"`
}

type UploadResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type DocumentResponse struct {
	ID     string             `json:"id"`
	Status string             `json:"status"`
	Result *CompressionResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}
