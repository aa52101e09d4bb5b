package stats

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/osse101/SpellcastersBot_Go/internal/metrics"
)

// Snapshot is a point-in-time copy of the usage counters
type Snapshot struct {
	Uptime            time.Duration
	TotalCommands     int64
	CommandsBreakdown map[string]int64
	SearchesRun       int64
	StartedAt         time.Time
}

// CommandCount is one row of the command leaderboard
type CommandCount struct {
	Name  string
	Count int64
}

// TopCommands returns the n most used commands, most used first.
// Ties are ordered by name.
func (s Snapshot) TopCommands(n int) []CommandCount {
	if n <= 0 {
		n = DefaultTopCommands
	}
	out := make([]CommandCount, 0, len(s.CommandsBreakdown))
	for name, count := range s.CommandsBreakdown {
		out = append(out, CommandCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Service defines the interface for usage statistics
type Service interface {
	RecordCommand(name string)
	Snapshot() Snapshot
}

type service struct {
	startedAt time.Time
	now       func() time.Time
	total     atomic.Int64
	searches  atomic.Int64
	commands  *xsync.Map[string, int64]
}

// NewService creates an in-memory stats service. Counters start at zero
// and are lost on restart.
func NewService() Service {
	return newService(time.Now)
}

func newService(now func() time.Time) *service {
	return &service{
		startedAt: now(),
		now:       now,
		commands:  xsync.NewMap[string, int64](),
	}
}

// RecordCommand counts one execution of a command
func (s *service) RecordCommand(name string) {
	s.total.Add(1)
	s.commands.Compute(name, func(oldValue int64, loaded bool) (int64, xsync.ComputeOp) {
		return oldValue + 1, xsync.UpdateOp
	})
	if name == SearchCommand {
		s.searches.Add(1)
	}
	metrics.CommandsTotal.WithLabelValues(name).Inc()
	slog.Debug(LogMsgCommandRecorded, "command", name)
}

// Snapshot returns a copy of the counters
func (s *service) Snapshot() Snapshot {
	breakdown := make(map[string]int64, s.commands.Size())
	s.commands.Range(func(name string, count int64) bool {
		breakdown[name] = count
		return true
	})
	return Snapshot{
		Uptime:            s.now().Sub(s.startedAt),
		TotalCommands:     s.total.Load(),
		CommandsBreakdown: breakdown,
		SearchesRun:       s.searches.Load(),
		StartedAt:         s.startedAt,
	}
}

// FormatUptime renders a duration as "1d 2h 3m 4s", omitting leading zero units
func FormatUptime(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	days := secs / 86400
	hours := secs % 86400 / 3600
	minutes := secs % 3600 / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", secs%60))
	return strings.Join(parts, " ")
}
