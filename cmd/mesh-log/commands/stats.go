package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Nodes             map[string]*NodeStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// NodeStats holds statistics for a single node.
type NodeStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Address   uint16

	// Requests counts inbound model messages by opcode.
	Requests map[wire.Opcode]int

	// Replies counts status messages sent.
	Replies int

	// TotalProcessing sums reply processing times.
	TotalProcessing time.Duration
}

// AvgProcessing returns the mean processing time of sent replies.
func (n *NodeStats) AvgProcessing() time.Duration {
	if n.Replies == 0 {
		return 0
	}
	return n.TotalProcessing / time.Duration(n.Replies)
}

// Collect reads the log file and aggregates statistics.
func Collect(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Nodes:             make(map[string]*NodeStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	node, ok := s.Nodes[event.NodeID]
	if !ok {
		node = &NodeStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
			Requests:  make(map[wire.Opcode]int),
		}
		s.Nodes[event.NodeID] = node
	}
	node.Events++
	if event.Timestamp.After(node.LastSeen) {
		node.LastSeen = event.Timestamp
	}
	if event.Address != 0 {
		node.Address = event.Address
	}

	if msg := event.Message; msg != nil {
		switch event.Direction {
		case log.DirectionIn:
			node.Requests[msg.Opcode]++
		case log.DirectionOut:
			node.Replies++
			if msg.ProcessingTime != nil {
				node.TotalProcessing += *msg.ProcessingTime
			}
		}
	}

	if event.Error != nil {
		s.Errors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Mesh Node Telemetry Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerStack, log.LayerModel, log.LayerStore} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryState, log.CategoryConfig, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut, log.DirectionLocal} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Nodes: %d\n", len(stats.Nodes))
	if len(stats.Nodes) > 0 {
		type nodeInfo struct {
			id    string
			stats *NodeStats
		}
		nodes := make([]nodeInfo, 0, len(stats.Nodes))
		for id, ns := range stats.Nodes {
			nodes = append(nodes, nodeInfo{id, ns})
		}
		sort.Slice(nodes, func(i, j int) bool {
			return nodes[i].stats.FirstSeen.Before(nodes[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, n := range nodes {
			duration := n.stats.LastSeen.Sub(n.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenNodeID(n.id), n.stats.Events, duration)
			if n.stats.Address != 0 {
				fmt.Fprintf(w, "           Address: 0x%04X\n", n.stats.Address)
			}
			ops := make([]wire.Opcode, 0, len(n.stats.Requests))
			for op := range n.stats.Requests {
				ops = append(ops, op)
			}
			sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
			for _, op := range ops {
				fmt.Fprintf(w, "           %s (%s): %d requests\n", op, wire.Classify(op), n.stats.Requests[op])
			}
			if n.stats.Replies > 0 {
				fmt.Fprintf(w, "           Replies: %d (avg %s)\n", n.stats.Replies, formatDuration(n.stats.AvgProcessing()))
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
