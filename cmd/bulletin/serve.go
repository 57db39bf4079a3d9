package main

import (
	"log"
	"strconv"
	"time"

	bulletin "github.com/eringen/instantbulletin"
)

// serveConfig builds the server configuration from environment variables.
// Unset or unparsable values fall back to the SiteConfig defaults.
func serveConfig() bulletin.SiteConfig {
	return bulletin.SiteConfig{
		Name:          bulletin.EnvOr("SITE_NAME", "InstantBulletin"),
		Addr:          bulletin.EnvOr("ADDR", ":3000"),
		SessionSecret: bulletin.MustEnv("SESSION_SECRET"),
		CookieSecure:  bulletin.EnvOr("COOKIE_SECURE", "") == "true",
		SessionTTL:    envDuration("SESSION_TTL"),
		PixelRatio:    envFloat("EXPORT_PIXEL_RATIO"),
		Settle:        envDuration("EXPORT_SETTLE"),
		Rasterizer:    bulletin.EnvOr("EXPORT_RASTERIZER", "native"),
		MaxUploadMB:   envInt("MAX_UPLOAD_MB"),
	}
}

func runServe() error {
	app := bulletin.New(serveConfig())
	defer app.Close()

	log.Printf("bulletin %s listening on %s", version, app.Config.Addr)
	return app.Start()
}

func envDuration(key string) time.Duration {
	v := bulletin.EnvOr(key, "")
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return 0
	}
	return d
}

func envFloat(key string) float64 {
	v := bulletin.EnvOr(key, "")
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return 0
	}
	return f
}

func envInt(key string) int {
	v := bulletin.EnvOr(key, "")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return 0
	}
	return n
}
