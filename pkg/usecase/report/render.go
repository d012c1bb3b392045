package report

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/callcoach/callcoach/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed template/report.md
var reportTmplRaw string

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"bullets": bullets,
}).Parse(reportTmplRaw))

// Render produces the coaching report document from a validated
// analysis result and the call metadata. A fresh report ID is stamped
// into each render.
func Render(result *model.AnalysisResult, details model.CallDetails) (string, error) {
	if result == nil {
		return "", goerr.New("analysis result is required")
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, map[string]any{
		"ReportID": model.NewReportID(),
		"Details":  details,
		"Result":   result,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render report template")
	}

	return buf.String(), nil
}

func bullets(items []string) string {
	if len(items) == 0 {
		return "- (none)"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
