package email

import (
	"embed"
	"html/template"
)

// Template names an HTML file under templates/.
type Template string

const (
	// TemplateExpenseRecorded corresponds to templates/expense_recorded.html
	TemplateExpenseRecorded Template = "expense_recorded"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplate(name Template) (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/"+string(name)+".html")
}
