package domain

// PivotRow é uma linha de uma tabela dinâmica. Valores nulos representam células ausentes.
type PivotRow struct {
	Label  string     `json:"label"`
	Values []*float64 `json:"values"`
}

// PivotTable representa uma tabela dinâmica (índice x colunas)
type PivotTable struct {
	Title   string     `json:"title"`
	Index   string     `json:"index"`
	Column  string     `json:"column"`
	Columns []string   `json:"columns"`
	Rows    []PivotRow `json:"rows"`
}

// Value retorna a célula (linha, coluna) ou nil quando não existe
func (p *PivotTable) Value(row, column string) *float64 {
	if p == nil {
		return nil
	}

	col := -1
	for i, c := range p.Columns {
		if c == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil
	}

	for _, r := range p.Rows {
		if r.Label == row {
			return r.Values[col]
		}
	}
	return nil
}
