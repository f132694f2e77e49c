// Package hosttest provides a recording host.API for plugin tests.
package hosttest

import (
	"context"
	"sync"

	"github.com/Luo9/Plugin-Hello/lib/host"
)

// Send kinds recorded by API.
const (
	GroupSend   = "group"
	PrivateSend = "private"
)

// Call is one recorded send.
type Call struct {
	Kind   string
	Target string
	Text   string
}

// API records every send and returns Err from each call. Safe for concurrent use.
type API struct {
	mu    sync.Mutex
	calls []Call
	// Err is returned by every send when set.
	Err error
}

var _ host.API = (*API)(nil)

// SendGroupMessage records a group send.
func (a *API) SendGroupMessage(_ context.Context, groupID, text string) error {
	return a.add(Call{Kind: GroupSend, Target: groupID, Text: text})
}

// SendPrivateMsg records a private send.
func (a *API) SendPrivateMsg(_ context.Context, userID, text string) error {
	return a.add(Call{Kind: PrivateSend, Target: userID, Text: text})
}

func (a *API) add(c Call) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, c)
	return a.Err
}

// Calls returns a copy of the recorded sends in order.
func (a *API) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Call, len(a.calls))
	copy(out, a.calls)
	return out
}
