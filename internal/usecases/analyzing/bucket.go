package analyzing

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const monthLayout = "2006-01"

// Day retorna o dia calendário do timestamp (2006-01-02)
func Day(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Week retorna a semana ISO do timestamp (2017-W22). O ano ISO faz parte da chave,
// então semanas de anos diferentes nunca se misturam.
func Week(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// MonthStart retorna o primeiro instante do mês do timestamp
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Month retorna o rótulo do mês do timestamp (2006-01)
func Month(t time.Time) string {
	return t.Format(monthLayout)
}

// MonthsBetween retorna a diferença em meses inteiros entre os meses de from e to
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

type conversionBucket struct {
	label string
	upper int
}

// Intervalos fixos (lower, upper] em dias. O primeiro intervalo começa em -1.
const conversionLowerBound = -1

var conversionBuckets = []conversionBucket{
	{label: "0d", upper: 0},
	{label: "1d", upper: 1},
	{label: "1w", upper: 7},
	{label: "1m", upper: 30},
	{label: "2m", upper: 60},
	{label: "3m", upper: 90},
	{label: "4m", upper: 120},
	{label: "5m", upper: 150},
	{label: "6m", upper: 180},
	{label: "7m", upper: 210},
	{label: "8m", upper: 240},
	{label: "9m", upper: 270},
	{label: "10m", upper: 300},
	{label: "11m", upper: 330},
	{label: "12m", upper: 360},
}

// ConversionBucket classifica o tempo de conversão em dias. Retorna false fora de (-1, 360].
func ConversionBucket(days int) (string, bool) {
	if days <= conversionLowerBound {
		return "", false
	}

	for _, b := range conversionBuckets {
		if days <= b.upper {
			return b.label, true
		}
	}

	return "", false
}

// ConversionBucketLabels retorna os rótulos na ordem dos intervalos
func ConversionBucketLabels() []string {
	labels := make([]string, 0, len(conversionBuckets))
	for _, b := range conversionBuckets {
		labels = append(labels, b.label)
	}
	return labels
}

func bucketIndex(label string) int {
	for i, b := range conversionBuckets {
		if b.label == label {
			return i
		}
	}
	return len(conversionBuckets)
}

// ConversionDays retorna os dias completos entre a primeira sessão e a primeira compra (arredondado para baixo)
func ConversionDays(firstSession, firstBuy time.Time) int {
	return int(math.Floor(firstBuy.Sub(firstSession).Hours() / 24))
}

// SessionSeconds retorna a duração da sessão em segundos, reduzida a um dia.
// Uma diferença negativa dá a volta no dia (ex.: -60s vira 86340s).
func SessionSeconds(start, end time.Time) int64 {
	const secondsPerDay = 24 * 60 * 60

	secs := int64(math.Floor(end.Sub(start).Seconds()))
	return ((secs % secondsPerDay) + secondsPerDay) % secondsPerDay
}

func ageLabel(age int) string {
	return strconv.Itoa(age)
}
