// Comando report carrega os logs uma vez e imprime as tabelas do relatório
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/afisha-analytics/infrastructure/dataset"
	"github.com/vfg2006/afisha-analytics/internal/config"
	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/internal/presenter"
	"github.com/vfg2006/afisha-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/afisha-analytics/pkg/log"
	"github.com/vfg2006/afisha-analytics/pkg/utils"
)

func main() {
	section := flag.String("section", "", "imprime apenas uma seção (summary, activity, sessions, conversion, orders, ltv, acquisition)")
	asJSON := flag.Bool("json", false, "imprime o relatório em JSON")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel)

	ctx := context.Background()

	loader, err := dataset.NewLoaderFromConfig(ctx, cfg.Dataset)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a origem dos logs")
	}

	ds, err := loader.Load(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar os logs de origem")
	}

	opts := analyzing.DefaultOptions()
	opts.DurationBins = cfg.Report.DurationBins

	report, err := analyzing.Analyze(ds, opts)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao montar o relatório")
	}

	if err := write(os.Stdout, report, *section, *asJSON); err != nil {
		logrus.WithError(err).Fatal("Erro ao imprimir o relatório")
	}
}

func write(w io.Writer, report *domain.Report, section string, asJSON bool) error {
	if asJSON {
		_, err := fmt.Fprintln(w, utils.PrettyJson(report))
		return err
	}

	if section != "" {
		return presenter.RenderSection(w, report, section)
	}

	return presenter.Render(w, report)
}
