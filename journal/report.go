package journal

import (
	"bytes"
	"math"
	"os"
	"strconv"
	"text/template"
	"time"
)

// RunReport renders a journaled run as an Org-mode review note, the
// kind that gets refiled into a research log and annotated by hand.
type RunReport struct {
	Run    RunRecord
	Trades []TradeRecord

	Notes       []string
	NextActions []string
}

var orgFuncs = template.FuncMap{
	"num": func(x float64) string {
		if math.IsNaN(x) {
			return "n/a"
		}
		return strconv.FormatFloat(x, 'f', 2, 64)
	},
	"pct": func(x float64) string {
		if math.IsNaN(x) {
			return "n/a"
		}
		return strconv.FormatFloat(x*100, 'f', 2, 64) + "%"
	},
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

// Render returns the full Org document, trade subtrees included.
func (r *RunReport) Render() (string, error) {
	t, err := template.New("run").Funcs(orgFuncs).Parse(runOrgTemplate)
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, r); err != nil {
		return "", err
	}
	if len(r.Trades) > 0 {
		buf.WriteString("\n")
		buf.WriteString(FormatTradesOrg(r.Trades))
	}
	return buf.String(), nil
}

func (r *RunReport) WriteOrg(path string) error {
	s, err := r.Render()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0o644)
}

const runOrgTemplate = `* RUN: {{.Run.Entry}}/{{.Run.Exit}} {{.Run.Frequency}}
:PROPERTIES:
:RUN_ID:      {{if .Run.RunID}}{{.Run.RunID}}{{else}}(run-id?){{end}}
:DATASET:     {{if .Run.Dataset}}{{.Run.Dataset}}{{else}}(dataset?){{end}}
:FREQUENCY:   {{.Run.Frequency}}
:ENTRY:       {{.Run.Entry}}
:EXIT:        {{.Run.Exit}}
:START_DATE:  {{.Run.Start.Format "2006-01-02"}}
:END_DATE:    {{.Run.End.Format "2006-01-02"}}
:START_BAL:   {{printf "%.2f" .Run.InitialCapital}}
:END_BAL:     {{printf "%.2f" .Run.FinalEquity}}
:RETURN_PCT:  {{pct .Run.TotalReturn}}
:ANN_RETURN:  {{pct .Run.AnnualizedReturn}}
:VOLATILITY:  {{pct .Run.Volatility}}
:SHARPE:      {{num .Run.SharpeRatio}}
:MAX_DD_PCT:  {{pct .Run.MaxDrawdown}}
:TRADES:      {{.Run.Trades}}
:WINS:        {{.Run.Wins}}
:LOSSES:      {{.Run.Losses}}
:WIN_RATE:    {{pct .Run.WinRate}}
:PROFIT_FAC:  {{num .Run.ProfitFactor}}
:STOP_EXITS:  {{.Run.StopLossExits}}
:CREATED:     [{{(orTime .Run.Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Return:        *{{pct .Run.TotalReturn}}*
- Annualized:    *{{pct .Run.AnnualizedReturn}}*
- Sharpe:        *{{num .Run.SharpeRatio}}*
- Max Drawdown:  *{{pct .Run.MaxDrawdown}}*
- Win Rate:      *{{pct .Run.WinRate}}*
- Profit Factor: *{{num .Run.ProfitFactor}}*

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Run.Wins}} |
| Losses  | {{.Run.Losses}} |
| Total   | {{.Run.Trades}} |

{{- if .Notes }}
** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}

{{- if .NextActions }}
** Next Actions
{{- range .NextActions }}
- [ ] {{.}}
{{- end }}
{{- end }}
`
