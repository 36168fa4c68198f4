package sse

import "github.com/osse101/MineIdler_Go/internal/domain"

// SessionPayload is the first event of a mining stream
type SessionPayload struct {
	Token    string `json:"token"`
	Location string `json:"location"`
}

// TickPayload carries one mining update. Item is absent on the opening tick.
type TickPayload = domain.MiningUpdate

// ErrorPayload is the terminal event of a stream that ended on an error
type ErrorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
