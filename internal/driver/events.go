package driver

import "time"

// CheckStatus is the progress state of one file in CheckFiles.
type CheckStatus string

const (
	StatusQueued  CheckStatus = "queued"
	StatusWorking CheckStatus = "checking"
	StatusCached  CheckStatus = "cached"
	StatusDone    CheckStatus = "done"
	StatusError   CheckStatus = "error"
)

// CheckEvent reports progress for a file.
type CheckEvent struct {
	File        string
	Status      CheckStatus
	Diagnostics int
	Err         error
	Elapsed     time.Duration
}

// Finished reports whether the event is the last one for its file.
func (e CheckEvent) Finished() bool {
	return e.Status == StatusDone || e.Status == StatusError || e.Status == StatusCached
}

// ProgressSink consumes check events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(CheckEvent)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- CheckEvent
}

func (s ChannelSink) OnEvent(ev CheckEvent) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(CheckEvent)

func (f SinkFunc) OnEvent(ev CheckEvent) { f(ev) }

func emit(sink ProgressSink, ev CheckEvent) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
