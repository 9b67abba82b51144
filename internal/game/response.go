package game

import (
	"maps"
	"slices"
)

// Well-known response channels.
const (
	ChannelOut  = "out"
	ChannelErr  = "err"
	ChannelDone = "done"
)

// response collects the text written to each channel during a tick.
type response struct {
	channels map[string]string
}

func newResponse() *response {
	return &response{channels: map[string]string{}}
}

func (r *response) set(channel string, msg string) {
	r.channels[channel] = msg
}

func (r *response) append(channel string, msg string) {
	r.channels[channel] += msg
}

// Get returns the text of channel, or "" if nothing was written to it.
func (r *response) Get(channel string) string {
	return r.channels[channel]
}

// Channels returns the names of all channels written this tick in sorted
// order.
func (r *response) Channels() []string {
	return slices.Sorted(maps.Keys(r.channels))
}

func (r *response) clear() {
	clear(r.channels)
}
