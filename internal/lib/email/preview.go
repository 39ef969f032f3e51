package email

// PreviewData holds sample values for every template, keyed by template
// name, so templates can be rendered without a real event.
var PreviewData = map[Template]map[string]string{
	TemplateExpenseRecorded: {
		"UserName": "Ana",
		"Value":    "120.50",
		"Date":     "2021-03-01",
		"Category": "Groceries",
	},
}

// Preview renders templateName with its sample data.
func (c *Client) Preview(templateName Template) (string, error) {
	return c.Render(templateName, PreviewData[templateName])
}
