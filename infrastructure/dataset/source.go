// Package dataset lê e valida os logs de visitas, pedidos e custos
package dataset

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

var ErrSourceNotFound = errors.New("arquivo de origem não encontrado")

// Source abre um arquivo de log pelo nome
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileSource lê os logs de um diretório local
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (s *FileSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.Dir, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrSourceNotFound, path)
		}
		return nil, errors.Wrapf(err, "erro ao abrir %s", path)
	}

	return f, nil
}
