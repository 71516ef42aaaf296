package engine

// Params - производные параметры перекодирования: масштаб (0,1]
// и качество JPEG [1,100]
type Params struct {
	JPEGQuality int
	Scale       float64
}

// Грубая шкала: уровень 0-3, вне диапазона - значение уровня 2
var levelParams = map[int]Params{
	0: {JPEGQuality: 90, Scale: 1.0},
	1: {JPEGQuality: 80, Scale: 0.9},
	2: {JPEGQuality: 65, Scale: 0.75},
	3: {JPEGQuality: 50, Scale: 0.6},
}

const fallbackLevel = 2

// Процентная шкала: опорные точки 10..100 с шагом 10, масштаб = точка/100
var percentAnchors = []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// ParamsForLevel возвращает параметры для уровня 0-3
func ParamsForLevel(level int) Params {
	if p, ok := levelParams[level]; ok {
		return p
	}
	return levelParams[fallbackLevel]
}

// ParamsForPercent возвращает параметры для процентной шкалы.
// Масштаб берется у ближайшей опорной точки по модулю разности;
// при равенстве выигрывает меньшая точка (первое совпадение
// при обходе по возрастанию). Качество JPEG равно входному проценту.
func ParamsForPercent(percent int) Params {
	best := percentAnchors[0]
	for _, a := range percentAnchors[1:] {
		if abs(percent-a) < abs(percent-best) {
			best = a
		}
	}

	quality := percent
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}

	return Params{JPEGQuality: quality, Scale: float64(best) / 100}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
