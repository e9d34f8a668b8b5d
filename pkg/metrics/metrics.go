package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts scoring activity. A nil Recorder is valid and records nothing.
type Recorder struct {
	registry       *prometheus.Registry
	commands       *prometheus.CounterVec
	balls          prometheus.Counter
	broadcasts     prometheus.Counter
	broadcastDrops prometheus.Counter
	viewers        prometheus.Gauge
	outbox         *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_commands_total",
			Help: "Scoring commands handled, by command and outcome.",
		}, []string{"command", "outcome"}),
		balls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_balls_recorded_total",
			Help: "Deliveries committed to the ledger.",
		}),
		broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_broadcasts_total",
			Help: "Scoreboard snapshots pushed to live viewers.",
		}),
		broadcastDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_broadcast_drops_total",
			Help: "Snapshots skipped because a viewer was too slow.",
		}),
		viewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crease_live_viewers",
			Help: "Connected live viewers.",
		}),
		outbox: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_outbox_deliveries_total",
			Help: "Outbox delivery attempts, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		r.commands, r.balls, r.broadcasts, r.broadcastDrops, r.viewers, r.outbox,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) RecordCommand(command, outcome string) {
	if r == nil {
		return
	}
	r.commands.WithLabelValues(command, outcome).Inc()
}

func (r *Recorder) RecordBall() {
	if r == nil {
		return
	}
	r.balls.Inc()
}

func (r *Recorder) RecordBroadcast(dropped int) {
	if r == nil {
		return
	}
	r.broadcasts.Inc()
	if dropped > 0 {
		r.broadcastDrops.Add(float64(dropped))
	}
}

func (r *Recorder) ViewerJoined() {
	if r == nil {
		return
	}
	r.viewers.Inc()
}

func (r *Recorder) ViewerLeft() {
	if r == nil {
		return
	}
	r.viewers.Dec()
}

func (r *Recorder) RecordOutboxDelivery(ok bool) {
	if r == nil {
		return
	}
	result := "delivered"
	if !ok {
		result = "failed"
	}
	r.outbox.WithLabelValues(result).Inc()
}
