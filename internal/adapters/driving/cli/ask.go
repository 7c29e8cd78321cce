package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askJSON    bool
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the tenant's policies",
	Long: `Retrieves the most relevant indexed passages for the tenant given
via --tenant and answers the question from them.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "show the source passages behind the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if tenantID == "" {
		return errors.New("a tenant is required: pass --tenant or set POLICYQA_TENANT")
	}
	if err := ensureServices(); err != nil {
		return err
	}

	answer, err := answerService.Ask(context.Background(), tenantID, args[0])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Text)

	if askSources && len(answer.Matches) > 0 {
		cmd.Println("\nSources:")
		for i, m := range answer.Matches {
			cmd.Printf("  [%d] (%.2f) %s\n", i+1, m.Score, m.Content)
		}
	}
	return nil
}
