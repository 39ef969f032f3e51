package email

// SendExpenseRecordedEmail tells a user an expense was stored for them.
func (c *Client) SendExpenseRecordedEmail(to, userName, value, date, category string) error {
	data := map[string]string{
		"UserName": userName,
		"Value":    value,
		"Date":     date,
		"Category": category,
	}

	return c.SendEmail(
		to,
		"New expense recorded: "+value,
		TemplateExpenseRecorded,
		data,
	)
}
