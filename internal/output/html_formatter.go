package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"io"

	"github.com/rgehrsitz/rpfire/internal/domain"
)

// HTMLField is one labeled input of the HTML form.
type HTMLField struct {
	Key   string
	Label string
	Value string
}

// HTMLPage is the data behind the HTML report. With ShowForm set it also renders
// the input form posted back to Action.
type HTMLPage struct {
	Title       string
	ShowForm    bool
	Action      string
	Fields      []HTMLField
	Error       string
	Result      *domain.SimulationResult
	Assumptions []string
}

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":      FormatCurrency,
	"rate":      FormatRate,
	"milestone": describeMilestone,
	"stop":      describeStop,
}).Parse(htmlTemplateSource))

// RenderHTMLPage writes a full HTML document for page.
func RenderHTMLPage(w io.Writer, page HTMLPage) error {
	if page.Title == "" {
		page.Title = "Retirement Projection"
	}
	if page.Result != nil && page.Assumptions == nil {
		page.Assumptions = Assumptions(page.Result)
	}
	return htmlTemplate.Execute(w, page)
}

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

func (h HTMLFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderHTMLPage(&buf, HTMLPage{Result: result}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
