package analyzing

import (
	"math"
	"sort"

	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/pkg/utils"
)

func mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}

	var sum float64
	for _, x := range xs {
		sum += x
	}
	return utils.Float(sum / float64(len(xs)))
}

// sampleStd usa n-1 no denominador
func sampleStd(xs []float64) *float64 {
	if len(xs) < 2 {
		return nil
	}

	m := *mean(xs)
	var acc float64
	for _, x := range xs {
		acc += (x - m) * (x - m)
	}
	return utils.Float(math.Sqrt(acc / float64(len(xs)-1)))
}

// quantile espera xs ordenado e interpola linearmente entre os vizinhos
func quantile(sorted []float64, q float64) *float64 {
	if len(sorted) == 0 {
		return nil
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	v := sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
	return &v
}

// mode retorna o valor mais frequente; em caso de empate, o menor
func mode(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}

	counts := make(map[float64]int)
	for _, x := range xs {
		counts[x]++
	}

	var best float64
	bestCount := 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return &best
}

func describe(xs []float64) domain.DurationStats {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	stats := domain.DurationStats{
		Count:  len(sorted),
		Mean:   mean(sorted),
		Std:    sampleStd(sorted),
		P25:    quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		P75:    quantile(sorted, 0.75),
		Mode:   mode(sorted),
	}
	if len(sorted) > 0 {
		stats.Min = utils.Float(sorted[0])
		stats.Max = utils.Float(sorted[len(sorted)-1])
	}
	return stats
}

// histogram divide [min, max] em bins de mesma largura; o último bin inclui o limite superior
func histogram(xs []float64, bins int) []domain.HistogramBin {
	if len(xs) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	result := make([]domain.HistogramBin, bins)
	for i := range result {
		result[i] = domain.HistogramBin{
			Lower: lo + float64(i)*width,
			Upper: lo + float64(i+1)*width,
		}
	}
	result[bins-1].Upper = hi

	for _, x := range xs {
		i := int((x - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		result[i].Count++
	}

	return result
}
