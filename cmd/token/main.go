// Comando token emite um bearer token para as rotas protegidas da API
package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/afisha-analytics/internal/config"
	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/internal/usecases/authenticating"
	"github.com/vfg2006/afisha-analytics/pkg/log"
)

func main() {
	subject := flag.String("subject", "", "identificação de quem vai usar o token")
	role := flag.String("role", domain.RoleOperator, "perfil do token (operator ou viewer)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel)

	token, err := authenticating.NewService(cfg).IssueToken(*subject, *role)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao emitir token")
	}

	logrus.WithFields(logrus.Fields{
		"subject": *subject,
		"role":    *role,
		"ttl":     cfg.Auth.TokenTTL.String(),
	}).Info("Token emitido")

	fmt.Println(token)
}
