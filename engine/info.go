package engine

import (
	"fmt"
	"strings"

	"github.com/himakhaitan/redis-lite/pkg/config"
)

const (
	SectionReplication  = "replication"
	SectionKeyspace     = "keyspace"
	SectionStats        = "stats"
	SectionCommandstats = "commandstats"
)

var defaultSections = []string{SectionReplication, SectionStats, SectionKeyspace, SectionCommandstats}

// Role returns "slave" for replicas and "master" otherwise
func (db *DB) Role() string {
	if db.settings.IsReplica() {
		return "slave"
	}
	return "master"
}

// Info renders the INFO text for a section. An empty section, "all" or
// "everything" renders every section; an unknown section renders nothing.
func (db *DB) Info(section string) string {
	section = strings.ToLower(section)

	sections := []string{section}
	switch section {
	case "", "all", "default", "everything":
		sections = defaultSections
	}

	var parts []string
	for _, s := range sections {
		var lines []string
		switch s {
		case SectionReplication:
			lines = db.replicationInfo()
		case SectionKeyspace:
			lines = db.keyspaceInfo()
		case SectionStats:
			lines = db.statsInfo()
		case SectionCommandstats:
			lines = db.commandstatsInfo()
		default:
			continue
		}
		parts = append(parts, strings.Join(lines, "\r\n"))
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\r\n\r\n") + "\r\n"
}

func (db *DB) replicationInfo() []string {
	lines := []string{"# Replication", "role:" + db.Role()}
	if id, ok := db.settings.Get(config.KeyReplicationID); ok {
		lines = append(lines, "master_replid:"+id)
	}
	if offset, ok := db.settings.Get(config.KeyReplicationOffset); ok {
		lines = append(lines, "master_repl_offset:"+offset)
	}
	return lines
}

func (db *DB) keyspaceInfo() []string {
	stats := db.Store.Stats()
	return []string{
		"# Keyspace",
		fmt.Sprintf("db0:keys=%d", stats.Keys),
	}
}

func (db *DB) statsInfo() []string {
	s := db.metrics.Stats()
	return []string{
		"# Stats",
		fmt.Sprintf("total_connections_received:%d", s.ConnectionsTotal),
		fmt.Sprintf("connected_clients:%d", s.ConnectedClients),
		fmt.Sprintf("total_commands_processed:%d", s.CommandsTotal),
		fmt.Sprintf("total_protocol_errors:%d", s.ProtocolErrors),
	}
}

func (db *DB) commandstatsInfo() []string {
	lines := []string{"# Commandstats"}
	for _, c := range db.metrics.CommandStats() {
		lines = append(lines, fmt.Sprintf("cmdstat_%s:calls=%d,usec=%d,usec_per_call=%.2f", c.Name, c.Calls, c.Usec, c.UsecPerCall))
	}
	return lines
}
