package config

import (
	"log"
	"os"
	"strings"
	"time"
)

type Env struct {
	AppAddr         string
	GinMode         string
	CORSOrigins     []string
	SessionSecret   string
	SessionTTL      time.Duration
	SettlementDelay time.Duration
	OSRMBaseURL     string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	origins := splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:3001",
			"http://127.0.0.1:3001",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}

	secret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if secret == "" {
		secret = "yamu-dev-secret"
		log.Println("warning: SESSION_SECRET not set, using development default")
	}

	osrm := strings.TrimSpace(os.Getenv("OSRM_BASE_URL"))
	if osrm == "" {
		osrm = "https://router.project-osrm.org"
	}

	return Env{
		AppAddr:         appAddr,
		GinMode:         ginMode,
		CORSOrigins:     origins,
		SessionSecret:   secret,
		SessionTTL:      durationEnv("SESSION_TTL", 30*time.Minute),
		SettlementDelay: durationEnv("SETTLEMENT_DELAY", 2500*time.Millisecond),
		OSRMBaseURL:     osrm,
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Printf("warning: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
