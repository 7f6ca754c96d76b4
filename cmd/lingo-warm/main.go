// Command lingo-warm warms locale bundles into the tag cache ahead of traffic.
// It drives the same preload service the API exposes, so cache keys and tags
// line up with what the invalidation endpoints expect.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"lingo/internal/platform/config"
	"lingo/internal/platform/logger"
	"lingo/internal/platform/store"

	preloaddom "lingo/internal/services/api/preload/domain"
	preloadrepo "lingo/internal/services/api/preload/repo"
	preloadsvc "lingo/internal/services/api/preload/service"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	rdsCfg := root.Prefix("SERVICE_REDIS_")
	l := logger.Get()

	var (
		strategyStr = flag.String("strategy", "immediate", "warm strategy (immediate, smart, progressive, priority, lazy)")
		localesStr  = flag.String("locales", "", "comma separated locales, empty warms all supported")
		dir         = flag.String("dir", "", "bundle directory, overrides CORE_API_PRELOAD_BUNDLE_DIR")
		timeout     = flag.Duration("timeout", 2*time.Minute, "overall deadline for the warm pass")
	)
	flag.Parse()

	if _, ok := preloaddom.ParseStrategy(*strategyStr); !ok {
		log.Fatalf("unknown -strategy %q", *strategyStr)
	}

	// cache only; bundle warming does not touch postgres or clickhouse
	st, err := store.Open(context.Background(), store.Config{
		AppName: "lingo",
		RDS: store.RedisConfig{
			Enabled: rdsCfg.MayBool("ENABLED", false),
			URL:     rdsCfg.MayString("URL", ""),
			Prefix:  rdsCfg.MayString("PREFIX", "lingo"),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	bundleDir := *dir
	if bundleDir == "" {
		bundleDir = apiCfg.MayString("PRELOAD_BUNDLE_DIR", "./bundles")
	}

	svc := preloadsvc.New(
		st.Cache,
		preloadrepo.NewFS(bundleDir),
		preloadsvc.WithStepDelay(apiCfg.MayDuration("PRELOAD_STEP_DELAY", preloadsvc.DefaultStepDelay)),
		preloadsvc.WithBundleTTL(apiCfg.MayDuration("PRELOAD_BUNDLE_TTL", preloadsvc.DefaultBundleTTL)),
	)

	var locs []string
	if s := strings.TrimSpace(*localesStr); s != "" {
		locs = strings.Split(s, ",")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := svc.Run(ctx, preloaddom.RunInput{
		PlanInput: preloaddom.PlanInput{Locales: locs},
		Strategy:  *strategyStr,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("warm failed")
	}
	l.Info().
		Str("strategy", string(res.Strategy)).
		Int("warmed", len(res.Warmed)).
		Int("skipped", len(res.Skipped)).
		Msg("warm complete")
}
