package main

import (
	"flag"
	"fmt"
	"os"

	"whispertray/config"
	"whispertray/doctor"
	"whispertray/log"
	"whispertray/session"
	"whispertray/shutdown"
	"whispertray/transcriber"
	"whispertray/tray"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("whispertray %s\n", version)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		return 1
	}
	log.SetDir(logPath)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	if *doctorFlag {
		return doctor.Run(cfg)
	}

	if err := doctor.CheckBinaries(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := session.AcquirePIDLease(cfg.PIDFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	tr := tray.Start(cfg.NotifierCmd)
	if tr != nil {
		log.Info("tray active")
	} else {
		log.Warn("tray inactive")
	}

	ctrl := session.New(cfg, tr, transcriber.New(cfg.BaseURL, cfg.Model))

	// Signal handlers do no work themselves: delivery is funneled through
	// single-slot channels and consumed here, one event at a time, so all
	// session state stays on this goroutine.
	toggleCh := make(chan os.Signal, 1)
	exitCh := make(chan os.Signal, 1)
	shutdown.NotifyToggle(toggleCh)
	shutdown.Notify(exitCh)

	log.Infof("started pid %d, send SIGUSR1 to toggle recording", os.Getpid())

	for {
		select {
		case <-toggleCh:
			// Only the stop transition blocks on the transcription call;
			// a toggle that queued up during it is stale, not a new
			// request. Toggles racing a recording start stay queued.
			if ctrl.Toggle() == session.StateRecording {
				select {
				case <-toggleCh:
					log.Warn("toggle ignored: delivered while processing")
				default:
				}
			}
		case <-exitCh:
			log.Info("exit signal received")
			ctrl.Cleanup()
			return 0
		}
	}
}
