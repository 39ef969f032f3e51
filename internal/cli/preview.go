package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/expense-tracker/internal/config"
	"github.com/deppfellow/expense-tracker/internal/lib/email"
	"github.com/deppfellow/expense-tracker/internal/logger"
)

func newPreviewEmailCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "preview-email",
		Short: "Render an email template with sample data to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.NewLogger("error", false)
			client := email.NewClient(&config.Config{}, &log)

			html, err := client.Preview(email.Template(name))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "template", string(email.TemplateExpenseRecorded), "template name")
	return cmd
}
