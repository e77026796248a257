package journal

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"
)

var runOrgFuncs = template.FuncMap{
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var runOrgTmpl = template.Must(
	template.New("scanrun").Funcs(runOrgFuncs).Parse(runOrgTemplate))

// FormatRunOrg renders a ScanRun as an Org-mode block with a
// PROPERTIES drawer for easy search.
func FormatRunOrg(r ScanRun) (string, error) {
	buf := new(bytes.Buffer)
	if err := runOrgTmpl.Execute(buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteOrg renders the run and writes it to path.
func (r ScanRun) WriteOrg(path string) error {
	s, err := FormatRunOrg(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

const runOrgTemplate = `
* SCAN: {{if .Dataset}}{{.Dataset}}{{else}}(dataset?){{end}}
:PROPERTIES:
:RUN_ID:      {{if .RunID}}{{.RunID}}{{else}}(run-id?){{end}}
:DATASET:     {{if .Dataset}}{{.Dataset}}{{else}}(dataset?){{end}}
:BARS:        {{.Bars}}
:FAST_MA:     {{.FastMA}}
:MEDIUM_MA:   {{.MediumMA}}
:SLOW_MA:     {{.SlowMA}}
:PRECISION:   {{.PricePrecision}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Signal Summary
| Kind  | Count |
|-------+-------|
| Type1 | {{.Type1Signals}} |
| Type2 | {{.Type2Signals}} |

{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`

// FormatSignalOrg renders one signal as an Org subtree. Structured
// facts live in the drawer; the Review placeholder is for hand notes.
func FormatSignalOrg(s SignalRecord) string {
	heading := fmt.Sprintf("** Signal: %s %+d at bar %d (%s)", s.Kind, s.Value, s.Index, shortID(s.RunID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":RUN_ID: %s\n", s.RunID))
	b.WriteString(fmt.Sprintf(":BAR_INDEX: %d\n", s.Index))
	b.WriteString(fmt.Sprintf(":TIME: %s\n", s.Time.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":STATE: %+d\n", s.State))
	b.WriteString(fmt.Sprintf(":KIND: %s\n", s.Kind))
	b.WriteString(fmt.Sprintf(":VALUE: %+d\n", s.Value))
	b.WriteString(fmt.Sprintf(":MODE: %s\n", s.Mode))
	b.WriteString(fmt.Sprintf(":PRICE: %.5f\n", s.Price))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatSignalsOrg renders multiple signals separated by blank lines.
func FormatSignalsOrg(signals []SignalRecord) string {
	var b strings.Builder
	for i, s := range signals {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatSignalOrg(s))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
