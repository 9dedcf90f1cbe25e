package generator

import (
	"fmt"
	"strings"
)

// OutputPolicy selects how a stream is turned into output.
type OutputPolicy string

const (
	// OutputText keeps text events only and emits the trimmed design once the stream ends.
	OutputText OutputPolicy = "text"
	// OutputRaw emits every event as it arrives, unfiltered.
	OutputRaw OutputPolicy = "raw"
)

func ParseOutputPolicy(s string) (OutputPolicy, error) {
	switch p := OutputPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case OutputText, OutputRaw:
		return p, nil
	default:
		return "", fmt.Errorf("unknown output policy %q (want text or raw)", s)
	}
}

// Sink receives collected output.
type Sink interface {
	Event(ev Event) error
	Design(markdown string) error
}

// Collect consumes stream to completion and closes it. Text fragments are
// concatenated in arrival order. With OutputRaw every event goes to sink.Event
// as it arrives; with OutputText the trimmed text goes to sink.Design once.
// Nothing is written to the design sink when the stream fails.
func Collect(stream EventStream, policy OutputPolicy, sink Sink) (Result, error) {
	defer stream.Close()

	var (
		res Result
		sb  strings.Builder
	)
	for stream.Next() {
		ev := stream.Current()
		res.Events++
		switch ev.Kind {
		case EventText:
			res.TextEvents++
			sb.WriteString(ev.Content)
		case EventMessageStart:
			res.Usage.InputTokens += ev.InputTokens
		case EventUsage:
			res.Usage.InputTokens += ev.InputTokens
			res.Usage.OutputTokens += ev.OutputTokens
		case EventStop:
			res.StopReason = ev.StopReason
		}
		if policy == OutputRaw {
			if err := sink.Event(ev); err != nil {
				return res, fmt.Errorf("write event: %w", err)
			}
		}
	}
	if err := stream.Err(); err != nil {
		return res, fmt.Errorf("event stream: %w", err)
	}

	res.Text = strings.TrimSpace(sb.String())
	if policy == OutputText {
		if err := sink.Design(res.Text); err != nil {
			return res, fmt.Errorf("write design: %w", err)
		}
	}
	return res, nil
}
