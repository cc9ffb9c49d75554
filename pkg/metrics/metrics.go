package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	vm "github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"
)

const timerPrefix = "cmd."

// Metrics holds server counters exported in Prometheus text format and
// per-command latency timers used for INFO commandstats.
type Metrics struct {
	set *vm.Set

	connectionsTotal *vm.Counter
	connectedClients *vm.Counter
	commandsTotal    *vm.Counter
	protocolErrors   *vm.Counter

	timers gometrics.Registry
}

// Stats is a point-in-time copy of the server counters
type Stats struct {
	ConnectionsTotal uint64 `json:"connections_total"`
	ConnectedClients uint64 `json:"connected_clients"`
	CommandsTotal    uint64 `json:"commands_total"`
	ProtocolErrors   uint64 `json:"protocol_errors"`
}

// CommandStat summarizes calls to one command
type CommandStat struct {
	Name        string  `json:"name"`
	Calls       int64   `json:"calls"`
	Usec        int64   `json:"usec"`
	UsecPerCall float64 `json:"usec_per_call"`
}

func New() *Metrics {
	set := vm.NewSet()
	return &Metrics{
		set:              set,
		connectionsTotal: set.NewCounter("redislite_connections_total"),
		connectedClients: set.NewCounter("redislite_connected_clients"),
		commandsTotal:    set.NewCounter("redislite_commands_total"),
		protocolErrors:   set.NewCounter("redislite_protocol_errors_total"),
		timers:           gometrics.NewRegistry(),
	}
}

func (m *Metrics) ConnectionOpened() {
	m.connectionsTotal.Inc()
	m.connectedClients.Inc()
}

func (m *Metrics) ConnectionClosed() {
	m.connectedClients.Dec()
}

func (m *Metrics) ProtocolError() {
	m.protocolErrors.Inc()
}

// ObserveCommand records one executed command. Names outside known are
// grouped under "unknown" so client input cannot create unbounded series.
func (m *Metrics) ObserveCommand(name string, known bool, elapsed time.Duration) {
	if !known {
		name = "unknown"
	}
	name = strings.ToLower(strings.ReplaceAll(name, " ", "|"))

	m.commandsTotal.Inc()
	m.set.GetOrCreateCounter(fmt.Sprintf(`redislite_command_calls_total{command=%q}`, name)).Inc()
	gometrics.GetOrRegisterTimer(timerPrefix+name, m.timers).Update(elapsed)
}

// RegisterGauge exports a value computed on every scrape
func (m *Metrics) RegisterGauge(name string, f func() float64) {
	m.set.GetOrCreateGauge(name, f)
}

func (m *Metrics) Stats() Stats {
	return Stats{
		ConnectionsTotal: m.connectionsTotal.Get(),
		ConnectedClients: m.connectedClients.Get(),
		CommandsTotal:    m.commandsTotal.Get(),
		ProtocolErrors:   m.protocolErrors.Get(),
	}
}

// CommandStats returns per-command statistics sorted by name
func (m *Metrics) CommandStats() []CommandStat {
	var stats []CommandStat
	m.timers.Each(func(name string, i interface{}) {
		timer, ok := i.(gometrics.Timer)
		if !ok || !strings.HasPrefix(name, timerPrefix) {
			return
		}
		snap := timer.Snapshot()
		perCall := snap.Mean() / float64(time.Microsecond)
		stats = append(stats, CommandStat{
			Name:        strings.TrimPrefix(name, timerPrefix),
			Calls:       snap.Count(),
			Usec:        int64(perCall * float64(snap.Count())),
			UsecPerCall: perCall,
		})
	})

	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// WritePrometheus writes every counter and gauge in Prometheus text format
func (m *Metrics) WritePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
}
