package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ai-newsdesk/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run the web search only and print the raw hits",
	Long: `Search sends the configured query to Tavily and prints the hits without
classifying them. Useful for checking what a sweep will see before spending
model calls on it.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "search query (default from config)")
	searchCmd.Flags().String("tavily-key", "", "Tavily API key")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	key, _ := cmd.Flags().GetString("tavily-key")
	asJSON, _ := cmd.Flags().GetBool("json")

	creds := credentials(key, "")
	if creds.Search == "" {
		return errors.New("a Tavily API key is required: set --tavily-key, AI_NEWSDESK_TAVILY_API_KEY, or .secrets/tavily-api-key")
	}

	client, err := search.NewTavily(creds.Search, appConfig.HTTP)
	if err != nil {
		return err
	}
	results, err := client.Search(cmd.Context(), search.NewRequest(query, appConfig.Search))
	if err != nil {
		return err
	}

	if asJSON {
		return search.FormatJSON(results, cmd.OutOrStdout())
	}
	search.FormatTable(results, cmd.OutOrStdout())
	return nil
}
