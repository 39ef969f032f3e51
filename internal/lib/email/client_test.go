package email

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/expense-tracker/internal/config"
)

func newTestClient() *Client {
	logger := zerolog.Nop()
	return NewClient(&config.Config{
		Integration: config.IntegrationConfig{EmailFrom: config.DefaultEmailFrom},
	}, &logger)
}

func TestClient_PreviewEveryTemplate(t *testing.T) {
	c := newTestClient()

	for name := range PreviewData {
		html, err := c.Preview(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, html)
	}
}

func TestClient_RenderExpenseRecorded(t *testing.T) {
	c := newTestClient()

	html, err := c.Render(TemplateExpenseRecorded, map[string]string{
		"UserName": "<Ana>",
		"Value":    "12.30",
		"Date":     "2021-03-01",
		"Category": "Food",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "12.30")
	assert.Contains(t, html, "Food")
	assert.Contains(t, html, "&lt;Ana&gt;")
}

func TestClient_UnknownTemplate(t *testing.T) {
	_, err := newTestClient().Render("missing", nil)
	assert.Error(t, err)
}

func TestClient_SendWithoutAPIKeyIsSkipped(t *testing.T) {
	c := newTestClient()
	assert.False(t, c.Enabled())
	assert.NoError(t, c.SendExpenseRecordedEmail("ana@example.com", "Ana", "1.00", "2021-03-01", "Food"))
}
