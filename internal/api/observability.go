package api

import (
	"log"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics with bounded cardinality; no per-player or per-connection
// labels.
var (
	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "websocket_connections_active",
		Help: "Currently open WebSocket connections",
	})

	playerCountGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "game_player_count",
		Help: "Players currently on the lobby roster",
	})

	broadcastsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_broadcasts_sent_total",
		Help: "State broadcasts actually transmitted (coalesced ones are not counted)",
	})

	collisionEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_collision_events_total",
		Help: "Throttled collision events emitted to clients",
	})

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connection_rejected_total",
		Help: "Connections rejected before reaching the game",
	}, []string{"reason"}) // bounded: "rate_limit", "origin", "ws_limit"
)

func updateWSConnections(n int)         { wsConnectionsActive.Set(float64(n)) }
func updatePlayerCount(n int)           { playerCountGauge.Set(float64(n)) }
func recordBroadcast()                  { broadcastsSent.Inc() }
func recordCollisionEvent()             { collisionEvents.Inc() }
func recordConnectionRejected(r string) { connectionRejected.WithLabelValues(r).Inc() }

// ObservabilityConfig configures the internal debug server.
type ObservabilityConfig struct {
	Enabled    bool
	ListenAddr string
}

// DefaultObservabilityConfig returns safe defaults: localhost only.
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:6060",
	}
}

// StartDebugServer serves pprof and Prometheus metrics. It binds to
// localhost unless ALLOW_DEBUG_EXTERNAL=true, since pprof on a public
// interface is an easy denial-of-service handle.
func StartDebugServer(cfg ObservabilityConfig) {
	if !cfg.Enabled {
		return
	}

	if cfg.ListenAddr != "127.0.0.1:6060" && cfg.ListenAddr != "localhost:6060" {
		if os.Getenv("ALLOW_DEBUG_EXTERNAL") != "true" {
			log.Println("⚠️ debug server forced to localhost")
			cfg.ListenAddr = "127.0.0.1:6060"
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	go func() {
		log.Printf("📊 debug server on %s (pprof, /metrics)", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
			log.Printf("⚠️ debug server: %v", err)
		}
	}()
}
