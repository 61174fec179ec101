package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hamed0406/endpointprobe/internal/config"
	"github.com/hamed0406/endpointprobe/internal/httpapi"
	"github.com/hamed0406/endpointprobe/internal/logging"
	"github.com/hamed0406/endpointprobe/internal/notify"
	"github.com/hamed0406/endpointprobe/internal/probe"
)

func main() {
	cfgPath := flag.String("config", "", "optional YAML config file; env vars apply otherwise")
	flag.Parse()

	cfg := config.FromEnv()
	var v *viper.Viper
	if *cfgPath != "" {
		var err error
		cfg, v, err = config.Load(*cfgPath)
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

	var notifier notify.Notifier
	if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
		notifier = notify.Multi{slack}
	}

	api := httpapi.NewServer(logger, cfg, prober, notifier)

	// Target list follows the config file while serving; other settings
	// need a restart.
	if v != nil {
		config.Watch(v, logger, func(next config.Config) {
			api.UpdateTargets(next.TargetList())
		})
	}

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
