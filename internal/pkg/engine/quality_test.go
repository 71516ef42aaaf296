package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParamsForLevel тестирует грубую шкалу качества 0-3
func TestParamsForLevel(t *testing.T) {
	tests := []struct {
		name        string
		level       int
		wantQuality int
		wantScale   float64
	}{
		{name: "level 0 keeps full scale", level: 0, wantQuality: 90, wantScale: 1.0},
		{name: "level 1", level: 1, wantQuality: 80, wantScale: 0.9},
		{name: "level 2", level: 2, wantQuality: 65, wantScale: 0.75},
		{name: "level 3 is the most aggressive", level: 3, wantQuality: 50, wantScale: 0.6},
		{name: "negative level falls back to level 2", level: -1, wantQuality: 65, wantScale: 0.75},
		{name: "level above range falls back to level 2", level: 7, wantQuality: 65, wantScale: 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParamsForLevel(tt.level)

			assert.Equal(t, tt.wantQuality, p.JPEGQuality)
			assert.InDelta(t, tt.wantScale, p.Scale, 1e-9)
		})
	}
}

// TestParamsForPercent тестирует процентную шкалу и выбор опорной точки
func TestParamsForPercent(t *testing.T) {
	tests := []struct {
		name        string
		percent     int
		wantQuality int
		wantScale   float64
	}{
		{name: "exact anchor 80", percent: 80, wantQuality: 80, wantScale: 0.8},
		{name: "exact anchor 10", percent: 10, wantQuality: 10, wantScale: 0.1},
		{name: "exact anchor 100", percent: 100, wantQuality: 100, wantScale: 1.0},
		{name: "tie 95 resolves to the smaller anchor 90", percent: 95, wantQuality: 95, wantScale: 0.9},
		{name: "tie 45 resolves to the smaller anchor 40", percent: 45, wantQuality: 45, wantScale: 0.4},
		{name: "94 is closest to 90", percent: 94, wantQuality: 94, wantScale: 0.9},
		{name: "96 is closest to 100", percent: 96, wantQuality: 96, wantScale: 1.0},
		{name: "below range clamps quality and picks anchor 10", percent: 0, wantQuality: 1, wantScale: 0.1},
		{name: "above range clamps quality and picks anchor 100", percent: 150, wantQuality: 100, wantScale: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParamsForPercent(tt.percent)

			assert.Equal(t, tt.wantQuality, p.JPEGQuality)
			assert.InDelta(t, tt.wantScale, p.Scale, 1e-9)
		})
	}
}

// TestScaleNeverAboveOne проверяет, что движок никогда не увеличивает изображения
func TestScaleNeverAboveOne(t *testing.T) {
	for level := -2; level <= 8; level++ {
		assert.LessOrEqual(t, ParamsForLevel(level).Scale, 1.0)
	}
	for percent := 0; percent <= 200; percent += 5 {
		assert.LessOrEqual(t, ParamsForPercent(percent).Scale, 1.0)
	}
}
