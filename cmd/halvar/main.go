package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"

	"github.com/halvar-engine/halvar/app"
	"github.com/halvar-engine/halvar/config"
	log "github.com/sirupsen/logrus"
)

func main() {
	runtime.LockOSThread()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = app.New(cfg).Run(ctx)
	if err != nil {
		stop()
		log.Fatalf("%+v\n", err)
	}
}
