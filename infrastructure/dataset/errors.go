package dataset

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrEmptyFile      = errors.New("arquivo vazio")
	ErrMissingColumn  = errors.New("coluna obrigatória ausente")
	ErrEmptyValue     = errors.New("valor vazio")
	ErrInvalidValue   = errors.New("valor inválido")
	ErrNegativeAmount = errors.New("valor monetário negativo")
	ErrDuplicateRow   = errors.New("linha duplicada")
	ErrFieldCount     = errors.New("quantidade de campos incorreta")
)

// LoadError identifica o arquivo e a linha que impediram o carregamento
type LoadError struct {
	File   string
	Line   int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s:%d: coluna %s: %s", e.File, e.Line, e.Column, e.Err.Error())
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Err.Error())
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
