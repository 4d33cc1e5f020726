package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/ai-newsdesk/internal/research"
	"github.com/pdiddy/ai-newsdesk/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser UI",
	Long: `Serve starts a local web page where you paste your Tavily and DeepSeek API
keys, start a sweep, watch its progress, and download the results as an Excel
file. Keys are used for that one run and never stored.

Prometheus metrics are exposed on /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8501)")
	mustBind("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	log := logrus.NewEntry(logger)
	runner := research.New(appConfig, log, research.NewMetrics(reg))
	srv := web.New(runner, log, reg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(logrus.Fields{
		"query":       appConfig.Search.Query,
		"max_results": appConfig.Search.MaxResults,
		"model":       appConfig.Model.Name,
	}).Info("starting newsdesk UI")
	return srv.Run(ctx, appConfig.Server.Addr)
}
