package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MarketLens/internal/analyzer"
	"MarketLens/internal/config"
	"MarketLens/internal/dispatch"
	"MarketLens/internal/provider"
	"MarketLens/internal/recorder"
	"MarketLens/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketLens starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init provider
	prov := provider.NewYahooProvider(cfg.Provider.Proxy, !cfg.Provider.InsecureSkipVerify)
	log.Printf("[INFO] data provider: %s", prov.Name())

	// Init analyzer
	a := analyzer.New(prov, analyzer.Options{
		Benchmark:   cfg.Defaults.Benchmark,
		Indices:     cfg.Defaults.Indices,
		SectorETFs:  cfg.Defaults.SectorETFs,
		MajorStocks: cfg.Defaults.MajorStocks,
	})

	// Init request journal
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init digest scheduler
	sched := scheduler.NewScheduler(ctx, a)
	if err := sched.Register(cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing digest now")
		go sched.RunDigestNow()
	}

	// Shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
	}()

	// Serve operations over stdio until EOF or shutdown
	d := dispatch.New(a, rec)
	log.Printf("[INFO] serving %d operations over stdio", len(d.Ops()))
	if err := d.Serve(ctx, os.Stdin, os.Stdout); err != nil && err != context.Canceled {
		log.Printf("[ERROR] dispatch loop: %v", err)
	}

	log.Println("[INFO] MarketLens stopped")
}
