package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kalenwallin/hudltest/driver/web"
	"github.com/kalenwallin/hudltest/lib/config"
	"github.com/kalenwallin/hudltest/lib/xlog"
	"github.com/kalenwallin/hudltest/suite"
	"github.com/kalenwallin/hudltest/suite/login"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	if err := run(); err != nil {
		log.Error(trace.DebugReport(err))
		os.Exit(255)
	}
}

func run() error {
	var (
		app   = kingpin.New("hudltest", "browser test suite for the hudl.com login flow")
		debug = app.Flag("debug", "verbose logging").Bool()

		crun         = app.Command("run", "run all login scenarios")
		crunScope    = crun.Flag("scope", "browser session scope, test or suite").String()
		crunHeadless = crun.Flag("headless", "run the browser without a display").Default("true").Bool()
	)

	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		return trace.Wrap(err)
	}

	level := log.InfoLevel
	if *debug {
		level = log.DebugLevel
	}
	xlog.InitLogger(level)

	switch cmd {
	case crun.FullCommand():
		return runSuite(*crunScope, *crunHeadless)
	}
	return nil
}

func runSuite(scope string, headless bool) error {
	// configuration problems abort the run before any browser starts
	conf, err := config.Load()
	if err != nil {
		return trace.Wrap(err)
	}
	conf.Headless = headless
	if scope != "" {
		conf.Scope = scope
		if err := conf.CheckAndSetDefaults(); err != nil {
			return trace.Wrap(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignals(cancel)

	runner := suite.NewRunner(web.New(conf))
	results := runner.Run(ctx, login.Scenarios(conf))

	for _, result := range results {
		fields := log.Fields{
			"scenario": result.Name,
			"elapsed":  result.Elapsed.Round(time.Millisecond),
		}
		if !result.Failed {
			log.WithFields(fields).Info("passed")
			continue
		}
		if result.Diagnostic != nil {
			fields["url"] = result.Diagnostic.URL
			fields["title"] = result.Diagnostic.Title
			if result.Diagnostic.Banner != "" {
				fields["banner"] = result.Diagnostic.Banner
			}
		}
		log.WithFields(fields).WithError(result.Error).Error("failed")
	}

	if !suite.AllPassed(results) {
		return trace.Errorf("login suite failed")
	}
	log.Infof("all %v scenarios passed", len(results))
	return nil
}

func setupSignals(cancel context.CancelFunc) {
	c := make(chan os.Signal, 3)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT)
	go func() {
		for s := range c {
			log.WithField("signal", s).Warn("canceling the run")
			cancel()
		}
	}()
}
