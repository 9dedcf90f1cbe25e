package generator

import (
	"context"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) RunTask(_ context.Context, prompt, model string) (EventStream, error) {
	prd := prompt
	if i := strings.LastIndex(prompt, prdStartMarker+"\n"); i >= 0 {
		prd = strings.TrimSuffix(prompt[i+len(prdStartMarker)+1:], "\n"+prdEndMarker)
	}

	events := []Event{
		{Kind: EventMessageStart, Model: model},
		TextEvent("# 1. Problem & Context\n\n"),
		TextEvent("Mock design generated from the following PRD:\n\n"),
		TextEvent("```\n" + prd + "\n```\n"),
		{Kind: EventStop, StopReason: "end_turn"},
	}
	return NewSliceStream(events, nil), nil
}

// SliceStream replays a fixed list of events, then reports err.
type SliceStream struct {
	events []Event
	err    error
	pos    int
	closed bool
}

func NewSliceStream(events []Event, err error) *SliceStream {
	return &SliceStream{events: events, err: err, pos: -1}
}

func (s *SliceStream) Next() bool {
	if s.closed || s.pos+1 >= len(s.events) {
		return false
	}
	s.pos++
	return true
}

func (s *SliceStream) Current() Event {
	if s.pos < 0 || s.pos >= len(s.events) {
		return Event{}
	}
	return s.events[s.pos]
}

func (s *SliceStream) Err() error {
	if s.pos+1 < len(s.events) && !s.closed {
		return nil
	}
	return s.err
}

func (s *SliceStream) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *SliceStream) Closed() bool { return s.closed }
