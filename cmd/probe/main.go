package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/hamed0406/endpointprobe/internal/config"
	"github.com/hamed0406/endpointprobe/internal/logging"
	"github.com/hamed0406/endpointprobe/internal/notify"
	"github.com/hamed0406/endpointprobe/internal/probe"
	"github.com/hamed0406/endpointprobe/internal/report"
	"github.com/hamed0406/endpointprobe/internal/runner"
)

func main() {
	cfgPath := flag.String("config", "", "optional YAML config file; env vars apply otherwise")
	flag.Parse()

	cfg := config.FromEnv()
	if *cfgPath != "" {
		var err error
		cfg, _, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	prober := probe.NewHTTPProber(cfg.Timeout)
	prober.PreviewLimit = cfg.PreviewLimit

	sink := report.NewTextSink(os.Stdout)
	sink.PreviewLimit = cfg.PreviewLimit

	run := runner.New(logger, prober, sink, cfg.Timeout)
	run.DiagnoseDNS = cfg.DiagnoseDNS

	logger.Info("probe_run_start", zap.Int("targets", len(cfg.Targets)))
	results, err := run.Run(context.Background(), cfg.TargetList())
	if err != nil {
		logger.Warn("report_write_error", zap.Error(err))
	}

	if sum, bad := notify.Summarize(results); bad {
		if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
			if err := (notify.Multi{slack}).Send(context.Background(), sum); err != nil {
				logger.Warn("notify_error", zap.Error(err))
			}
		}
	}

	logger.Info("probe_run_done", zap.Int("results", len(results)))
	// per-target failures are informational; the run itself exits 0
}
