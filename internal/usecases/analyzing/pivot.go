package analyzing

import (
	"sort"
	"strconv"

	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/pkg/utils"
)

type pivotCell struct {
	sum   float64
	count int
}

// pivotBuilder acumula valores por (linha, coluna) e gera uma domain.PivotTable.
// Células sem valor ficam nulas na tabela gerada.
type pivotBuilder struct {
	cells map[string]map[string]*pivotCell
	rows  map[string]struct{}
	cols  map[string]struct{}
}

func newPivotBuilder() *pivotBuilder {
	return &pivotBuilder{
		cells: make(map[string]map[string]*pivotCell),
		rows:  make(map[string]struct{}),
		cols:  make(map[string]struct{}),
	}
}

func (b *pivotBuilder) add(row, col string, v float64) {
	b.rows[row] = struct{}{}
	b.cols[col] = struct{}{}

	if b.cells[row] == nil {
		b.cells[row] = make(map[string]*pivotCell)
	}
	cell := b.cells[row][col]
	if cell == nil {
		cell = &pivotCell{}
		b.cells[row][col] = cell
	}
	cell.sum += v
	cell.count++
}

type pivotAggregation int

const (
	aggregateSum pivotAggregation = iota
	aggregateMean
)

func (b *pivotBuilder) build(title, index, column string, agg pivotAggregation, rowLess, colLess func(a, c string) bool) domain.PivotTable {
	rows := sortedKeys(b.rows, rowLess)
	cols := sortedKeys(b.cols, colLess)

	table := domain.PivotTable{
		Title:   title,
		Index:   index,
		Column:  column,
		Columns: cols,
		Rows:    make([]domain.PivotRow, 0, len(rows)),
	}

	for _, r := range rows {
		values := make([]*float64, len(cols))
		for i, c := range cols {
			cell := b.cells[r][c]
			if cell == nil || cell.count == 0 {
				continue
			}
			switch agg {
			case aggregateMean:
				values[i] = utils.SafeRatio(cell.sum, float64(cell.count))
			default:
				values[i] = utils.Float(cell.sum)
			}
		}
		table.Rows = append(table.Rows, domain.PivotRow{Label: r, Values: values})
	}

	return table
}

func sortedKeys(set map[string]struct{}, less func(a, c string) bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	if less == nil {
		sort.Strings(keys)
		return keys
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	return keys
}

// numericLess ordena rótulos numéricos (idades, fontes) pelo valor
func numericLess(a, c string) bool {
	x, errA := strconv.Atoi(a)
	y, errC := strconv.Atoi(c)
	if errA != nil || errC != nil {
		return a < c
	}
	return x < y
}

func bucketLess(a, c string) bool {
	return bucketIndex(a) < bucketIndex(c)
}
