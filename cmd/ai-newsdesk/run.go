package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/ai-newsdesk/internal/export"
	"github.com/pdiddy/ai-newsdesk/internal/research"
	"github.com/pdiddy/ai-newsdesk/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one research sweep and export the results",
	Long: `Run searches for the past day's AI news, classifies every hit with the chat
model, and writes the items judged valuable to a file. Progress is printed to
stderr as each item is analyzed.

API keys come from --tavily-key / --deepseek-key, then the environment
variables AI_NEWSDESK_TAVILY_API_KEY / AI_NEWSDESK_DEEPSEEK_API_KEY, then
.secrets/tavily-api-key and .secrets/deepseek-api-key.`,
	RunE: runResearch,
}

func init() {
	runCmd.Flags().String("query", "", "search query (default from config)")
	runCmd.Flags().String("tavily-key", "", "Tavily API key")
	runCmd.Flags().String("deepseek-key", "", "DeepSeek API key")
	runCmd.Flags().String("format", string(export.FormatXLSX), "export format: xlsx, docx, yaml or json")
	runCmd.Flags().String("out", "", "output path (default AI_Research_YYYYMMDD.<format>; \"-\" writes yaml/json to stdout)")

	rootCmd.AddCommand(runCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	searchKey, _ := cmd.Flags().GetString("tavily-key")
	modelKey, _ := cmd.Flags().GetString("deepseek-key")
	formatName, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if out == "-" && (format == export.FormatXLSX || format == export.FormatDOCX) {
		return fmt.Errorf("--out - only supports yaml or json, not %s", format)
	}

	creds := credentials(searchKey, modelKey)
	if !creds.Complete() {
		return errors.New("both API keys are required: set --tavily-key and --deepseek-key, the AI_NEWSDESK_*_API_KEY variables, or files in .secrets/")
	}

	log := logrus.NewEntry(logger)
	runner := research.New(appConfig, log, nil)

	stderr := cmd.ErrOrStderr()
	report, err := runner.Run(cmd.Context(), query, creds, progressPrinter(stderr))
	if err != nil {
		var ie *research.InitError
		if errors.As(err, &ie) {
			return fmt.Errorf("初始化失败，请检查 Key 是否正确: %w", err)
		}
		return err
	}

	if report.Empty() {
		fmt.Fprintln(stderr, research.NoResultsMessage)
		return nil
	}

	if out == "" {
		out = export.FileName(time.Now(), format)
	}
	if err := writeReport(cmd.OutOrStdout(), out, format, report.Records); err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(stderr, "Wrote %d record(s) to %s\n", len(report.Records), out)
	}
	return nil
}

// progressPrinter prints each event's message on its own line.
func progressPrinter(w io.Writer) research.Observer {
	return func(e research.Event) {
		switch e.Kind {
		case research.EventAnalyzing:
			fmt.Fprintf(w, "[%d/%d] %s\n", e.Index+1, e.Total, e.Message)
		case research.EventWarning:
			fmt.Fprintf(w, "  ! %s\n", e.Message)
		case research.EventDone:
			fmt.Fprintln(w, e.Message)
		default:
			fmt.Fprintf(w, "  %s\n", e.Message)
		}
	}
}

// writeReport writes records to path in format. A path of "-" writes to
// stdout.
func writeReport(stdout io.Writer, path string, format export.Format, records []types.CuratedRecord) error {
	if format == export.FormatDOCX {
		return export.WriteDOCX(path, records)
	}

	w := stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case export.FormatXLSX:
		return export.WriteXLSX(w, records)
	case export.FormatYAML:
		return export.WriteYAML(w, records)
	default:
		return export.WriteJSON(w, records)
	}
}
