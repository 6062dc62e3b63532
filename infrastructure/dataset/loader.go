package dataset

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/pkg/utils"
)

// DatasetLoader carrega os três logs de origem
type DatasetLoader interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// Files nomeia os arquivos de visitas, pedidos e custos dentro do Source
type Files struct {
	Visits string
	Orders string
	Costs  string
}

type Loader struct {
	source Source
	files  Files
	now    func() time.Time
}

func NewLoader(source Source, files Files) *Loader {
	return &Loader{
		source: source,
		files:  files,
		now:    time.Now,
	}
}

type rawFile struct {
	data []byte
	err  error
}

// Load lê os três arquivos em paralelo e valida todas as linhas.
// Qualquer linha inválida interrompe o carregamento.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	names := []string{l.files.Visits, l.files.Orders, l.files.Costs}
	raws := make([]rawFile, len(names))

	wg := sync.WaitGroup{}
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			raws[i].data, raws[i].err = l.read(ctx, name)
		}(i, name)
	}
	wg.Wait()

	for _, raw := range raws {
		if raw.err != nil {
			return nil, raw.err
		}
	}

	visits, err := ParseVisits(l.files.Visits, bytes.NewReader(raws[0].data))
	if err != nil {
		return nil, err
	}

	orders, err := ParseOrders(l.files.Orders, bytes.NewReader(raws[1].data))
	if err != nil {
		return nil, err
	}

	costs, err := ParseCosts(l.files.Costs, bytes.NewReader(raws[2].data))
	if err != nil {
		return nil, err
	}

	ds := &domain.Dataset{
		Visits:      visits,
		Orders:      orders,
		Costs:       costs,
		Fingerprint: fingerprint(raws),
		LoadedAt:    l.now().UTC(),
	}

	logrus.WithFields(logrus.Fields{
		"visits":      len(visits),
		"orders":      len(orders),
		"costs":       len(costs),
		"fingerprint": ds.Fingerprint,
	}).Info("Logs de origem carregados")

	return ds, nil
}

func (l *Loader) read(ctx context.Context, name string) ([]byte, error) {
	rc, err := l.source.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler %s", name)
	}

	return data, nil
}

func fingerprint(raws []rawFile) string {
	h := sha256.New()
	for _, raw := range raws {
		sum := sha256.Sum256(raw.data)
		h.Write(sum[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// table percorre um CSV já com o cabeçalho validado
type table struct {
	file   string
	reader *csv.Reader
	index  map[string]int
	seen   map[string]int
	record []string
	line   int
}

func openTable(file string, r io.Reader, required []string) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{File: file, Line: 1, Err: ErrEmptyFile}
	}
	if err != nil {
		return nil, csvError(file, err)
	}

	index, err := columnIndex(header, required)
	if err != nil {
		return nil, &LoadError{File: file, Line: 1, Err: err}
	}

	return &table{
		file:   file,
		reader: reader,
		index:  index,
		seen:   make(map[string]int),
	}, nil
}

// next avança para a próxima linha; retorna false no fim do arquivo
func (t *table) next() (bool, error) {
	record, err := t.reader.Read()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, csvError(t.file, err)
	}

	t.record = record
	t.line, _ = t.reader.FieldPos(0)

	key := strings.Join(record, "\x1f")
	if first, ok := t.seen[key]; ok {
		return false, &LoadError{
			File: t.file,
			Line: t.line,
			Err:  errors.Wrapf(ErrDuplicateRow, "igual à linha %d", first),
		}
	}
	t.seen[key] = t.line

	return true, nil
}

func (t *table) fail(column string, err error) error {
	return &LoadError{File: t.file, Line: t.line, Column: column, Err: err}
}

func (t *table) value(column string) (string, error) {
	v := strings.TrimSpace(t.record[t.index[column]])
	if v == "" {
		return "", t.fail(column, ErrEmptyValue)
	}
	return v, nil
}

func (t *table) userID(column string) (domain.UserID, error) {
	v, err := t.value(column)
	if err != nil {
		return 0, err
	}

	uid, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, t.fail(column, errors.Wrapf(ErrInvalidValue, "%q", v))
	}
	return domain.UserID(uid), nil
}

func (t *table) sourceID(column string) (domain.SourceID, error) {
	v, err := t.value(column)
	if err != nil {
		return 0, err
	}

	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, t.fail(column, errors.Wrapf(ErrInvalidValue, "%q", v))
	}
	return domain.SourceID(id), nil
}

func (t *table) timestamp(column string) (time.Time, error) {
	v, err := t.value(column)
	if err != nil {
		return time.Time{}, err
	}

	ts, err := utils.ParseTimestamp(v)
	if err != nil {
		return time.Time{}, t.fail(column, errors.Wrap(ErrInvalidValue, err.Error()))
	}
	return ts, nil
}

func (t *table) money(column string) (decimal.Decimal, error) {
	v, err := t.value(column)
	if err != nil {
		return decimal.Zero, err
	}

	amount, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, t.fail(column, errors.Wrapf(ErrInvalidValue, "%q", v))
	}
	if amount.IsNegative() {
		return decimal.Zero, t.fail(column, errors.Wrapf(ErrNegativeAmount, "%s", v))
	}
	return amount, nil
}

func csvError(file string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		cause := parseErr.Err
		if errors.Is(cause, csv.ErrFieldCount) {
			cause = ErrFieldCount
		}
		return &LoadError{File: file, Line: parseErr.Line, Err: cause}
	}
	return errors.Wrapf(err, "erro ao ler %s", file)
}

// ParseVisits lê o log de sessões
func ParseVisits(file string, r io.Reader) ([]domain.Visit, error) {
	t, err := openTable(file, r, visitColumns)
	if err != nil {
		return nil, err
	}

	visits := make([]domain.Visit, 0)
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		var v domain.Visit
		if v.UserID, err = t.userID("uid"); err != nil {
			return nil, err
		}
		device, err := t.value("device")
		if err != nil {
			return nil, err
		}
		v.Device = domain.Device(strings.ToLower(device))
		if v.StartTs, err = t.timestamp("start_ts"); err != nil {
			return nil, err
		}
		if v.EndTs, err = t.timestamp("end_ts"); err != nil {
			return nil, err
		}
		if v.SourceID, err = t.sourceID("source_id"); err != nil {
			return nil, err
		}

		visits = append(visits, v)
	}

	return visits, nil
}

// ParseOrders lê o log de pedidos
func ParseOrders(file string, r io.Reader) ([]domain.Order, error) {
	t, err := openTable(file, r, orderColumns)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0)
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		var o domain.Order
		if o.UserID, err = t.userID("uid"); err != nil {
			return nil, err
		}
		if o.BuyTs, err = t.timestamp("buy_ts"); err != nil {
			return nil, err
		}
		if o.Revenue, err = t.money("revenue"); err != nil {
			return nil, err
		}

		orders = append(orders, o)
	}

	return orders, nil
}

// ParseCosts lê os gastos diários por fonte
func ParseCosts(file string, r io.Reader) ([]domain.Cost, error) {
	t, err := openTable(file, r, costColumns)
	if err != nil {
		return nil, err
	}

	costs := make([]domain.Cost, 0)
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		var c domain.Cost
		if c.SourceID, err = t.sourceID("source_id"); err != nil {
			return nil, err
		}
		if c.Date, err = t.timestamp("dt"); err != nil {
			return nil, err
		}
		if c.Amount, err = t.money("costs"); err != nil {
			return nil, err
		}

		costs = append(costs, c)
	}

	return costs, nil
}
