// Package progress provides ProgressSender implementations for delivering
// status updates from a running skill to its caller.
package progress

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Update is a single progress message. Seq starts at 1 for each sender.
type Update struct {
	Seq     int    `json:"seq"`
	Message string `json:"message"`
}

// ChannelSender forwards updates to a channel. SendUpdate blocks until the
// channel accepts the update or ctx is done.
type ChannelSender struct {
	mu  sync.Mutex
	ch  chan<- Update
	seq int
}

// NewChannelSender creates a sender writing to ch. The caller owns ch.
func NewChannelSender(ch chan<- Update) *ChannelSender {
	return &ChannelSender{ch: ch}
}

// SendUpdate implements skills.ProgressSender
func (s *ChannelSender) SendUpdate(ctx context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	update := Update{Seq: s.seq + 1, Message: message}
	select {
	case s.ch <- update:
		s.seq = update.Seq
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "progress update not delivered")
	}
}

// Recorder keeps every update in the order it was sent
type Recorder struct {
	mu      sync.Mutex
	updates []Update
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SendUpdate implements skills.ProgressSender
func (r *Recorder) SendUpdate(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "progress update not delivered")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, Update{Seq: len(r.updates) + 1, Message: message})
	return nil
}

// Updates returns a copy of the recorded updates
func (r *Recorder) Updates() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Update, len(r.updates))
	copy(out, r.updates)
	return out
}

// Messages returns the recorded messages in order
func (r *Recorder) Messages() []string {
	updates := r.Updates()
	out := make([]string, len(updates))
	for i, u := range updates {
		out[i] = u.Message
	}
	return out
}

// SenderFunc adapts a function to skills.ProgressSender
type SenderFunc func(ctx context.Context, message string) error

// SendUpdate implements skills.ProgressSender
func (f SenderFunc) SendUpdate(ctx context.Context, message string) error {
	return f(ctx, message)
}

// Discard drops every update
var Discard = SenderFunc(func(context.Context, string) error { return nil })
