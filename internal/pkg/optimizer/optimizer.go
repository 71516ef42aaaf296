package optimizer

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Optimizer выполняет структурную оптимизацию PDF: удаление избыточных
// объектов и сжатие потоков. Перекодированием изображений не занимается.
type Optimizer interface {
	OptimizeFile(inPath, outPath string) error
}

type pdfcpuOptimizer struct {
	conf *model.Configuration
}

func NewOptimizer() Optimizer {
	return &pdfcpuOptimizer{conf: model.NewDefaultConfiguration()}
}

func (o *pdfcpuOptimizer) OptimizeFile(inPath, outPath string) error {
	if err := api.OptimizeFile(inPath, outPath, o.conf); err != nil {
		return fmt.Errorf("pdfcpu optimize: %w", err)
	}
	return nil
}
