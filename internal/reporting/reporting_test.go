package reporting

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revops-engine/internal/document"
	"revops-engine/internal/domain"
	"revops-engine/internal/engine"
)

func testReport(t *testing.T) (*Report, domain.Inputs) {
	t.Helper()
	in, err := document.Default().ToInputs()
	require.NoError(t, err)

	fixed := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	r, err := NewGenerator(engine.New()).
		WithClock(func() time.Time { return fixed }).
		Generate(context.Background(), in)
	require.NoError(t, err)
	return r, in
}

func TestGenerate(t *testing.T) {
	r, _ := testReport(t)

	assert.Len(t, r.Sensitivity, len(ReportMetrics))
	assert.NotEmpty(t, r.Drivers)
	require.Len(t, r.Presets, len(domain.ScenarioPresets))

	// best case first, and ordering holds on sales
	assert.Equal(t, domain.ScenarioOptimistic, r.Presets[0].ScenarioID)
	assert.Equal(t, domain.ScenarioDegraded, r.Presets[3].ScenarioID)
	assert.Greater(t, r.Presets[0].Sales, r.Presets[1].Sales)
	assert.Greater(t, r.Presets[2].Sales, r.Presets[3].Sales)
	assert.InDelta(t, r.Results.GTM.Sales, r.Presets[1].Sales, 1e-9)
}

func TestGenerate_InvalidInputs(t *testing.T) {
	in, _ := document.Default().ToInputs()
	in.Deal.GRR = 2

	_, err := NewGenerator(engine.New()).Generate(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrRateOutOfRange)
}

func TestRenderMarkdown(t *testing.T) {
	r, _ := testReport(t)
	md := RenderMarkdown(r)

	for _, want := range []string{
		"# Revenue Operations Report",
		"Generated: 2025-01-15T10:00:00Z",
		"| Monthly Sales | 40.95 |",
		"| Upfront Revenue | 1433250.00 |",
		"| EBITDA | 989937.50 |",
		"| Outbound | CPL | 1000 | 40.95 | 50000.00 |",
		"| closer | 2 | 71662.50 |",
		"## Health: HEALTHY",
		"## Sensitivity (+10% per input)",
		"## Scenario Presets",
		"| optimistic |",
	} {
		assert.Contains(t, md, want)
	}
}

func TestRenderResultsMarkdown_PaybackSentinel(t *testing.T) {
	in, _ := document.Default().ToInputs()
	in.Deal.UpfrontPct = 0

	res := engine.Compute(in, engine.DefaultWorkingDays, nil)
	md := RenderResultsMarkdown(res)
	assert.Contains(t, md, "| Payback (months) | never |")
}

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func channelsCSV(t *testing.T, res *engine.Results) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, WriteChannelsCSV(&sb, res))
	return sb.String()
}

func TestWriteChannelsCSV(t *testing.T) {
	r, _ := testReport(t)
	out := channelsCSV(t, r.Results)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "channel_id", rows[0][0])
	assert.Equal(t, []string{"outbound", "Outbound", "CPL"}, rows[1][:3])
	assert.Equal(t, "40.950000", rows[1][7])
	assert.Equal(t, "50000.00", rows[1][9])
	assert.Equal(t, "50.00", rows[1][11])
	assert.Equal(t, "budget_per_lead", rows[0][17])
	assert.Equal(t, "0.00", rows[1][17])
}

func TestWriteChannelsCSV_BudgetChannel(t *testing.T) {
	in, _ := document.Default().ToInputs()
	in.Channels[0].CostMethod = domain.CostMethodBudget
	in.Channels[0].MonthlyBudget = domain.Float64Ptr(20000)

	rows, err := csv.NewReader(strings.NewReader(channelsCSV(t, engine.Compute(in, engine.DefaultWorkingDays, nil)))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "0.00", rows[1][11])
	assert.Equal(t, "20.00", rows[1][17])
}

func TestWriteCSV_PropagatesWriterErrors(t *testing.T) {
	r, _ := testReport(t)

	err := WriteChannelsCSV(failingWriter{}, r.Results)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("WriteChannelsCSV error = %v, want disk full", err)
	}
	err = WriteSensitivityCSV(failingWriter{}, r.Sensitivity)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("WriteSensitivityCSV error = %v, want disk full", err)
	}
}

func TestWriteChannelsCSV_QuotesNames(t *testing.T) {
	in, _ := document.Default().ToInputs()
	in.Channels[0].Name = "Events, Trade Shows"

	out := channelsCSV(t, engine.Compute(in, engine.DefaultWorkingDays, nil))
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Events, Trade Shows", rows[1][1])
}

func TestWriteSensitivityCSV(t *testing.T) {
	r, in := testReport(t)
	var sb strings.Builder
	require.NoError(t, WriteSensitivityCSV(&sb, r.Sensitivity))

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	require.NoError(t, err)

	perTable := len(engine.Params(in))
	assert.Len(t, rows, 1+perTable*len(ReportMetrics))
	assert.Equal(t, "metric", rows[0][0])
	assert.Equal(t, engine.MetricEBITDA, rows[1][0])
	assert.Equal(t, "1", rows[1][1])
}
