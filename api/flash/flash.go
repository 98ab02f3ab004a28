// Package flash holds one-shot notices in the session until the client
// fetches them.
package flash

import (
	"context"
	"encoding/gob"

	"github.com/alexedwards/scs/v2"
)

const sessionKey = "flashes"

type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	Success = "success"
	Info    = "info"
	Warning = "warning"
	Danger  = "danger"
)

func init() {
	gob.Register([]Notice{})
}

// Add appends a notice to the pending list.
func Add(ctx context.Context, sm *scs.SessionManager, level string, message string) {
	pending, _ := sm.Get(ctx, sessionKey).([]Notice)
	pending = append(pending, Notice{Level: level, Message: message})
	sm.Put(ctx, sessionKey, pending)
}

// Pop returns all pending notices and clears them.
func Pop(ctx context.Context, sm *scs.SessionManager) []Notice {
	pending, _ := sm.Pop(ctx, sessionKey).([]Notice)
	if pending == nil {
		pending = []Notice{}
	}
	return pending
}
