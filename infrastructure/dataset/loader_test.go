package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/afisha-analytics/internal/domain"
)

const (
	visitsCSV = `Device,End Ts,Source Id,Start Ts,Uid
touch,2017-12-20 17:38:00,4,2017-12-20 17:20:00,16879256277535980062
desktop,2018-02-19 17:21:00,2,2018-02-19 16:53:00,104060357244891740
`
	ordersCSV = `Buy Ts,Revenue,Uid
2017-06-01 00:10:00,17.00,10329302124590727494
2017-06-01 00:25:00,0.55,11627257723692907447
`
	costsCSV = `source_id,dt,costs
1,2017-06-01,75.20
2,2017-06-01,132.56
`
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

var testFiles = Files{Visits: "visits.csv", Orders: "orders.csv", Costs: "costs.csv"}

func TestLoader_Load(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"visits.csv": visitsCSV,
		"orders.csv": ordersCSV,
		"costs.csv":  costsCSV,
	})

	loader := NewLoader(NewFileSource(dir), testFiles)
	loader.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Visits, 2)
	assert.Equal(t, domain.UserID(16879256277535980062), ds.Visits[0].UserID)
	assert.Equal(t, domain.DeviceTouch, ds.Visits[0].Device)
	assert.Equal(t, domain.SourceID(4), ds.Visits[0].SourceID)
	assert.Equal(t, time.Date(2017, 12, 20, 17, 20, 0, 0, time.UTC), ds.Visits[0].StartTs)
	assert.Equal(t, time.Date(2017, 12, 20, 17, 38, 0, 0, time.UTC), ds.Visits[0].EndTs)

	require.Len(t, ds.Orders, 2)
	assert.Equal(t, "17", ds.Orders[0].Revenue.String())

	require.Len(t, ds.Costs, 2)
	assert.Equal(t, "132.56", ds.Costs[1].Amount.String())
	assert.Equal(t, time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC), ds.Costs[1].Date)

	assert.Len(t, ds.Fingerprint, 64)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ds.LoadedAt)
}

func TestLoader_LoadFingerprint(t *testing.T) {
	files := map[string]string{
		"visits.csv": visitsCSV,
		"orders.csv": ordersCSV,
		"costs.csv":  costsCSV,
	}

	first, err := NewLoader(NewFileSource(writeFiles(t, files)), testFiles).Load(context.Background())
	require.NoError(t, err)

	second, err := NewLoader(NewFileSource(writeFiles(t, files)), testFiles).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)

	files["costs.csv"] = costsCSV + "3,2017-06-01,10.00\n"
	third, err := NewLoader(NewFileSource(writeFiles(t, files)), testFiles).Load(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint, third.Fingerprint)
}

func TestLoader_LoadMissingFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"visits.csv": visitsCSV,
		"orders.csv": ordersCSV,
	})

	_, err := NewLoader(NewFileSource(dir), testFiles).Load(context.Background())
	assert.True(t, errors.Is(err, ErrSourceNotFound))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		parse    func(string) error
		content  string
		expected error
		line     int
	}{
		{
			name:     "Coluna obrigatória ausente",
			parse:    parseOrders,
			content:  "buy_ts,uid\n2017-06-01 00:10:00,1\n",
			expected: ErrMissingColumn,
			line:     1,
		},
		{
			name:     "Arquivo vazio",
			parse:    parseOrders,
			content:  "",
			expected: ErrEmptyFile,
			line:     1,
		},
		{
			name:     "Valor vazio",
			parse:    parseOrders,
			content:  "buy_ts,revenue,uid\n2017-06-01 00:10:00,,1\n",
			expected: ErrEmptyValue,
			line:     2,
		},
		{
			name:     "Receita inválida",
			parse:    parseOrders,
			content:  "buy_ts,revenue,uid\n2017-06-01 00:10:00,abc,1\n",
			expected: ErrInvalidValue,
			line:     2,
		},
		{
			name:     "Receita negativa",
			parse:    parseOrders,
			content:  "buy_ts,revenue,uid\n2017-06-01 00:10:00,1.00,1\n2017-06-02 00:10:00,-3.00,1\n",
			expected: ErrNegativeAmount,
			line:     3,
		},
		{
			name:     "Timestamp inválido",
			parse:    parseVisits,
			content:  "uid,device,start_ts,end_ts,source_id\n1,touch,ontem,2017-06-01 00:10:00,1\n",
			expected: ErrInvalidValue,
			line:     2,
		},
		{
			name:     "Uid não numérico",
			parse:    parseVisits,
			content:  "uid,device,start_ts,end_ts,source_id\nx1,touch,2017-06-01 00:00:00,2017-06-01 00:10:00,1\n",
			expected: ErrInvalidValue,
			line:     2,
		},
		{
			name:     "Linha duplicada",
			parse:    parseCosts,
			content:  "source_id,dt,costs\n1,2017-06-01,10\n2,2017-06-01,10\n1,2017-06-01,10\n",
			expected: ErrDuplicateRow,
			line:     4,
		},
		{
			name:     "Quantidade de campos incorreta",
			parse:    parseCosts,
			content:  "source_id,dt,costs\n1,2017-06-01\n",
			expected: ErrFieldCount,
			line:     2,
		},
		{
			name:     "Custo negativo",
			parse:    parseCosts,
			content:  "source_id,dt,costs\n1,2017-06-01,-1\n",
			expected: ErrNegativeAmount,
			line:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse(tt.content)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), err.Error())

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, "test.csv", loadErr.File)
			assert.Equal(t, tt.line, loadErr.Line)
		})
	}
}

func TestParseVisits_HeaderOnly(t *testing.T) {
	visits, err := ParseVisits("visits.csv", strings.NewReader("uid,device,start_ts,end_ts,source_id\n"))
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestParseCosts_IgnoresUnknownColumns(t *testing.T) {
	costs, err := ParseCosts("costs.csv", strings.NewReader("campaign,source_id,dt,costs\nverão,3,2017-06-01T00:00:00,1.5\n"))
	require.NoError(t, err)
	require.Len(t, costs, 1)
	assert.Equal(t, domain.SourceID(3), costs[0].SourceID)
	assert.Equal(t, "1.5", costs[0].Amount.String())
}

func parseVisits(content string) error {
	_, err := ParseVisits("test.csv", strings.NewReader(content))
	return err
}

func parseOrders(content string) error {
	_, err := ParseOrders("test.csv", strings.NewReader(content))
	return err
}

func parseCosts(content string) error {
	_, err := ParseCosts("test.csv", strings.NewReader(content))
	return err
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "start_ts", normalizeHeader("Start Ts"))
	assert.Equal(t, "source_id", normalizeHeader("  Source   Id "))
	assert.Equal(t, "uid", normalizeHeader("\ufeffUid"))
}
