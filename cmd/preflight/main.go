// cmd/preflight/main.go
package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	targets := strings.TrimSpace(os.Getenv("PROBE_TARGETS"))
	timeout := strings.TrimSpace(os.Getenv("PROBE_TIMEOUT_MS"))
	webhook := strings.TrimSpace(os.Getenv("SLACK_WEBHOOK"))
	trigger := strings.TrimSpace(os.Getenv("TRIGGER_API_KEYS"))
	addr := strings.TrimSpace(os.Getenv("ADDR"))

	if targets == "" {
		warn("PROBE_TARGETS empty — the built-in localhost sequence will be probed.")
	} else {
		for _, raw := range strings.Split(targets, ",") {
			raw = strings.TrimSpace(raw)
			u, err := url.Parse(raw)
			if err != nil || u.Scheme == "" || u.Host == "" {
				fail("PROBE_TARGETS contains an unparseable URL: " + raw)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				fail("PROBE_TARGETS URL has non-HTTP scheme: " + raw)
			}
		}
		ok("PROBE_TARGETS parses")
	}

	if timeout != "" {
		if ms, err := strconv.Atoi(timeout); err != nil || ms <= 0 {
			fail("PROBE_TIMEOUT_MS must be a positive integer, got: " + timeout)
		} else if ms > 60000 {
			warn("PROBE_TIMEOUT_MS over a minute; each target blocks the run that long.")
		}
	}

	if webhook != "" && !strings.HasPrefix(webhook, "https://") {
		warn("SLACK_WEBHOOK does not look like an https URL.")
	}

	if trigger == "" {
		warn("TRIGGER_API_KEYS empty — the probe trigger endpoint will be open (dev mode).")
	} else if strings.Contains(trigger, " ") {
		warn("TRIGGER_API_KEYS contains spaces; use comma-separated with no spaces, e.g. key1,key2")
	}

	if addr == "" {
		warn("ADDR is empty; default in your app may be used.")
	} else {
		ok("ADDR=" + addr)
	}

	ok("preflight passed")
}
