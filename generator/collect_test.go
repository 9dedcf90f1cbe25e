package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events  []Event
	designs []string
	err     error
}

func (s *recordingSink) Event(ev Event) error {
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) Design(md string) error {
	s.designs = append(s.designs, md)
	return s.err
}

func TestCollect_TextJoinsFragmentsInOrderAndTrims(t *testing.T) {
	t.Parallel()
	stream := NewSliceStream([]Event{
		{Kind: EventMessageStart, Model: "m", InputTokens: 7},
		TextEvent("\n\n  # Title"),
		TextEvent("\nfirst "),
		{Kind: EventUsage, OutputTokens: 3},
		TextEvent("second"),
		TextEvent("  \n"),
		{Kind: EventStop, StopReason: "end_turn"},
	}, nil)
	sink := &recordingSink{}

	res, err := Collect(stream, OutputText, sink)
	require.NoError(t, err)

	assert.Equal(t, "# Title\nfirst second", res.Text)
	assert.Equal(t, []string{"# Title\nfirst second"}, sink.designs)
	assert.Empty(t, sink.events)
	assert.Equal(t, 7, res.Events)
	assert.Equal(t, 4, res.TextEvents)
	assert.Equal(t, "end_turn", res.StopReason)
	assert.Equal(t, Usage{InputTokens: 7, OutputTokens: 3}, res.Usage)
	assert.True(t, stream.Closed())
}

func TestCollect_TextManyFragments(t *testing.T) {
	t.Parallel()
	var events []Event
	want := ""
	for _, frag := range []string{"a", "b ", " c", "d\n", "e"} {
		events = append(events, TextEvent(frag))
		want += frag
	}
	sink := &recordingSink{}

	res, err := Collect(NewSliceStream(events, nil), OutputText, sink)
	require.NoError(t, err)
	assert.Equal(t, want, res.Text)
}

func TestCollect_RawEmitsEveryEventUnfiltered(t *testing.T) {
	t.Parallel()
	events := []Event{
		{Kind: EventMessageStart, Model: "m"},
		TextEvent("  hello "),
		{Kind: EventStop, StopReason: "stop"},
	}
	sink := &recordingSink{}

	res, err := Collect(NewSliceStream(events, nil), OutputRaw, sink)
	require.NoError(t, err)

	assert.Equal(t, events, sink.events)
	assert.Empty(t, sink.designs)
	assert.Equal(t, "hello", res.Text)
}

func TestCollect_StreamErrorSkipsDesign(t *testing.T) {
	t.Parallel()
	upstream := errors.New("connection reset")
	stream := NewSliceStream([]Event{TextEvent("partial")}, upstream)
	sink := &recordingSink{}

	res, err := Collect(stream, OutputText, sink)
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
	assert.Empty(t, sink.designs)
	assert.Equal(t, 1, res.Events)
	assert.True(t, stream.Closed())
}

func TestCollect_SinkError(t *testing.T) {
	t.Parallel()
	sinkErr := errors.New("broken pipe")
	sink := &recordingSink{err: sinkErr}

	_, err := Collect(NewSliceStream([]Event{TextEvent("x")}, nil), OutputRaw, sink)
	assert.ErrorIs(t, err, sinkErr)
}

func TestCollect_EmptyStream(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{}

	res, err := Collect(NewSliceStream(nil, nil), OutputText, sink)
	require.NoError(t, err)
	assert.Equal(t, "", res.Text)
	assert.Equal(t, []string{""}, sink.designs)
}

func TestParseOutputPolicy(t *testing.T) {
	t.Parallel()
	p, err := ParseOutputPolicy("text")
	require.NoError(t, err)
	assert.Equal(t, OutputText, p)

	p, err = ParseOutputPolicy(" RAW ")
	require.NoError(t, err)
	assert.Equal(t, OutputRaw, p)

	_, err = ParseOutputPolicy("json")
	assert.Error(t, err)
}
