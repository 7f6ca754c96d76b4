// @title         Lingo API
// @version       0.1.0
// @description   Locale detection, detection history, and bundle preloading

package main

import (
	"context"

	"lingo/internal/platform/config"
	"lingo/internal/platform/logger"
	phttp "lingo/internal/platform/net/http"
	"lingo/internal/platform/store"

	"lingo/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	rdsCfg := root.Prefix("SERVICE_REDIS_")     // rdsCfg lives under SERVICE_REDIS_*
	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres + CH + tag cache)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "lingo",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled:   chCfg.MayBool("ENABLED", true),
				URL:       chCfg.MayString("DBURL", ""),
				ClientTag: "api",
			},
			RDS: store.RedisConfig{
				Enabled: rdsCfg.MayBool("ENABLED", false),
				URL:     rdsCfg.MayString("URL", ""),
				Prefix:  rdsCfg.MayString("PREFIX", "lingo"),
			},
			CacheSweep: apiCfg.MayDuration("CACHE_SWEEP", 0),
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
