// Package presenter renderiza as tabelas do relatório como texto alinhado
package presenter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/pkg/utils"
)

const (
	SectionSummary     = "summary"
	SectionActivity    = "activity"
	SectionSessions    = "sessions"
	SectionConversion  = "conversion"
	SectionOrders      = "orders"
	SectionLTV         = "ltv"
	SectionAcquisition = "acquisition"
)

// Sections lista as seções na ordem em que Render as imprime
var Sections = []string{
	SectionSummary,
	SectionActivity,
	SectionSessions,
	SectionConversion,
	SectionOrders,
	SectionLTV,
	SectionAcquisition,
}

var ErrUnknownSection = errors.New("seção de relatório desconhecida")

var renderers = map[string]func(*tabwriter.Writer, *domain.Report){
	SectionSummary:     renderSummary,
	SectionActivity:    renderActivity,
	SectionSessions:    renderSessions,
	SectionConversion:  renderConversion,
	SectionOrders:      renderOrders,
	SectionLTV:         renderLTV,
	SectionAcquisition: renderAcquisition,
}

// Render imprime todas as seções do relatório
func Render(w io.Writer, report *domain.Report) error {
	for i, section := range Sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := RenderSection(w, report, section); err != nil {
			return err
		}
	}
	return nil
}

// RenderSection imprime uma única seção. Valores indefinidos aparecem como "-".
func RenderSection(w io.Writer, report *domain.Report, section string) error {
	render, ok := renderers[section]
	if !ok {
		return errors.Wrap(ErrUnknownSection, section)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	render(tw, report)
	return tw.Flush()
}

func ratio(v *float64) string {
	return utils.FormatRatio(v, func(f float64) string {
		return strconv.FormatFloat(f, 'f', 2, 64)
	})
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func title(tw *tabwriter.Writer, text string) {
	fmt.Fprintf(tw, "== %s ==\n", text)
}

func row(tw *tabwriter.Writer, cells ...string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

func renderSummary(tw *tabwriter.Writer, r *domain.Report) {
	s := r.Summary
	title(tw, "Resumo")
	row(tw, "relatório", r.ID)
	row(tw, "fingerprint", r.Fingerprint)
	if !r.GeneratedAt.IsZero() {
		row(tw, "gerado em", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	row(tw, "visitas", strconv.Itoa(s.Visits))
	row(tw, "pedidos", strconv.Itoa(s.Orders))
	row(tw, "custos", strconv.Itoa(s.CostRecords))
	row(tw, "usuários", strconv.Itoa(s.Users))
	row(tw, "compradores", strconv.Itoa(s.Buyers))
	row(tw, "receita total", money(s.TotalRevenue))
	row(tw, "custo total", money(s.TotalCosts))
	row(tw, "ROMI geral", ratio(s.OverallROMI))
}

func renderActivity(tw *tabwriter.Writer, r *domain.Report) {
	a := r.Activity
	title(tw, "Atividade")
	row(tw, "DAU", ratio(a.DAU))
	row(tw, "WAU", ratio(a.WAU))
	row(tw, "MAU", ratio(a.MAU))
	row(tw, "DAU/WAU", ratio(a.StickyWAU))
	row(tw, "DAU/MAU", ratio(a.StickyMAU))

	fmt.Fprintln(tw)
	row(tw, "dispositivo", "sessões", "usuários")
	for _, d := range a.Devices {
		row(tw, string(d.Device), strconv.Itoa(d.Sessions), strconv.Itoa(d.Users))
	}

	fmt.Fprintln(tw)
	row(tw, "mês", "usuários")
	for _, p := range a.Monthly {
		row(tw, p.Period, strconv.Itoa(p.Users))
	}
}

func renderSessions(tw *tabwriter.Writer, r *domain.Report) {
	s := r.Sessions
	d := s.Duration
	title(tw, "Sessões")
	row(tw, "sessões por usuário (média)", ratio(s.MeanSessionsPerUser))

	fmt.Fprintln(tw)
	row(tw, "duração (min)", "count", "mean", "std", "min", "25%", "50%", "75%", "max", "moda")
	row(tw, "", strconv.Itoa(d.Count), ratio(d.Mean), ratio(d.Std), ratio(d.Min),
		ratio(d.P25), ratio(d.Median), ratio(d.P75), ratio(d.Max), ratio(d.Mode))

	fmt.Fprintln(tw)
	row(tw, "faixa (min)", "sessões")
	for _, bin := range s.DurationHistogram {
		if bin.Count == 0 {
			continue
		}
		row(tw, fmt.Sprintf("[%.1f, %.1f)", bin.Lower, bin.Upper), strconv.Itoa(bin.Count))
	}
}

func renderConversion(tw *tabwriter.Writer, r *domain.Report) {
	c := r.Conversion
	title(tw, "Conversão")
	row(tw, "compradores com visita", strconv.Itoa(c.Buyers))
	row(tw, "fora das faixas", strconv.Itoa(c.Unbucketed))

	fmt.Fprintln(tw)
	renderPivot(tw, c.ByFirstSessionMonth)
	fmt.Fprintln(tw)
	renderPivot(tw, c.BySource)
}

func renderOrders(tw *tabwriter.Writer, r *domain.Report) {
	o := r.Orders
	title(tw, "Pedidos")
	row(tw, "mês", "pedidos", "compradores", "pedidos/comprador")
	for _, m := range o.Monthly {
		row(tw, m.Month, strconv.Itoa(m.Orders), strconv.Itoa(m.Buyers), ratio(m.OrdersPerBuyer))
	}
	row(tw, "média", ratio(o.MeanOrders), "", ratio(o.MeanOrdersPerBuyer))
}

func renderLTV(tw *tabwriter.Writer, r *domain.Report) {
	l := r.LTV
	title(tw, "LTV")
	row(tw, "coorte", "compradores", "receita", "LTV acumulado")
	for _, c := range l.Cohorts {
		row(tw, c.Month, strconv.Itoa(c.Buyers), money(c.Revenue), ratio(c.CumulativeLTV))
	}

	fmt.Fprintln(tw)
	renderPivot(tw, l.Pivot)
}

func renderAcquisition(tw *tabwriter.Writer, r *domain.Report) {
	a := r.Acquisition
	title(tw, "Aquisição")
	row(tw, "custo total", money(a.TotalCosts))

	fmt.Fprintln(tw)
	row(tw, "fonte", "CAC")
	for _, s := range a.CACBySource {
		row(tw, strconv.Itoa(int(s.SourceID)), strconv.FormatFloat(s.CAC, 'f', 2, 64))
	}

	fmt.Fprintln(tw)
	row(tw, "mês", "custos")
	for _, m := range a.CostsByMonth {
		row(tw, m.Month, money(m.Costs))
	}

	fmt.Fprintln(tw)
	renderPivot(tw, a.ROMIPivot)
}

func renderPivot(tw *tabwriter.Writer, p domain.PivotTable) {
	if p.Title != "" {
		fmt.Fprintf(tw, "-- %s --\n", p.Title)
	}

	header := append([]string{p.Index + " \\ " + p.Column}, p.Columns...)
	row(tw, header...)

	for _, r := range p.Rows {
		cells := make([]string, 0, len(r.Values)+1)
		cells = append(cells, r.Label)
		for _, v := range r.Values {
			cells = append(cells, ratio(v))
		}
		row(tw, cells...)
	}
}
