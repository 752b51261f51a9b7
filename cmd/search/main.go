package main

import (
	"context"
	"time"

	"github.com/ahmadnk31/5gfones-search/config"
	"github.com/ahmadnk31/5gfones-search/internal/app"
	"github.com/ahmadnk31/5gfones-search/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	searchService := app.New(sigCtx, cfg)

	searchService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	searchService.Close(ctx)
}
