package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/logger"
	"github.com/osse101/MineIdler_Go/internal/mining"
	"github.com/osse101/MineIdler_Go/internal/sse"
)

// StartMiningRequest selects where to mine
type StartMiningRequest struct {
	Location string `json:"location" validate:"required,max=64,excludesall=\x00\n\r\t"`
}

// StopMiningRequest stops the session holding Token, or any session when empty
type StopMiningRequest struct {
	Token string `json:"token" validate:"max=64"`
}

// StopMiningResponse reports whether a session was stopped
type StopMiningResponse struct {
	Stopped bool `json:"stopped"`
}

// MiningStatusResponse describes the caller's active session, if any
type MiningStatusResponse struct {
	Active  bool                      `json:"active"`
	Session *domain.MiningSessionInfo `json:"session,omitempty"`
}

// MiningHandlers serves the mining session endpoints
type MiningHandlers struct {
	svc       mining.Service
	keepalive time.Duration
}

// NewMiningHandlers creates mining handlers sending keepalives every
// keepalive while a stream is idle
func NewMiningHandlers(svc mining.Service, keepalive time.Duration) *MiningHandlers {
	if keepalive <= 0 {
		keepalive = sse.KeepaliveInterval
	}
	return &MiningHandlers{svc: svc, keepalive: keepalive}
}

// HandleStart starts a session and streams it as server-sent events until the
// session ends or the client goes away
// @Summary Start mining
// @Description Starts a session at a mine location and streams it as server-sent events
// @Tags mining
// @Accept json
// @Produce text/event-stream
// @Param X-Player-ID header int true "Player ID"
// @Param X-Mining-Token header string false "Token of a session to resume"
// @Param request body StartMiningRequest true "Mine location"
// @Success 200 {string} string "Event stream"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/mining/start [post]
func (h *MiningHandlers) HandleStart(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}

	var req StartMiningRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpStartMining); err != nil {
		return
	}

	stream, err := h.svc.Start(r.Context(), playerID, req.Location, r.Header.Get(HeaderMiningToken))
	if err != nil {
		respondServiceError(w, r, OpStartMining, err)
		return
	}

	log := logger.FromContext(r.Context())

	sw, err := sse.NewWriter(w)
	if err != nil {
		h.svc.Stop(playerID, domain.StopReasonManual, stream.Token)
		log.Error(ErrMsgStreamingUnsupported, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgStreamingUnsupported)
		return
	}

	if err := sw.Send(sse.EventTypeSession, sse.SessionPayload{Token: stream.Token, Location: stream.Location}); err != nil {
		log.Warn(sse.LogMsgWriteError, "error", err)
		return
	}

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case update, ok := <-stream.Updates():
			if !ok {
				if err := stream.Err(); err != nil {
					_ = sw.Send(sse.EventTypeError, streamErrorPayload(err))
				}
				return
			}
			if err := sw.Send(sse.EventTypeTick, update); err != nil {
				log.Warn(sse.LogMsgWriteError, "error", err)
				return
			}
			keepalive.Reset(h.keepalive)

		case <-keepalive.C:
			if err := sw.Keepalive(); err != nil {
				log.Warn(sse.LogMsgWriteError, "error", err)
				return
			}

		case <-r.Context().Done():
			return
		}
	}
}

// HandleStop stops the caller's session
// @Summary Stop mining
// @Description Stops the player's session, or only the session holding the given token
// @Tags mining
// @Accept json
// @Produce json
// @Param X-Player-ID header int true "Player ID"
// @Param request body StopMiningRequest false "Session token"
// @Success 200 {object} StopMiningResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/mining/stop [post]
func (h *MiningHandlers) HandleStop(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}

	var req StopMiningRequest
	if err := DecodeOptionalRequest(r, w, &req, OpStopMining); err != nil {
		return
	}

	stopped := h.svc.Stop(playerID, domain.StopReasonManual, req.Token)
	respondJSON(w, http.StatusOK, StopMiningResponse{Stopped: stopped})
}

// HandleStatus reports the caller's active session
// @Summary Mining status
// @Description Reports whether the player has an active session
// @Tags mining
// @Produce json
// @Param X-Player-ID header int true "Player ID"
// @Success 200 {object} MiningStatusResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/mining/status [get]
func (h *MiningHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}

	info, active := h.svc.ActiveSession(playerID)
	resp := MiningStatusResponse{Active: active}
	if active {
		resp.Session = &info
	}
	respondJSON(w, http.StatusOK, resp)
}

// streamErrorPayload describes why a stream ended on an error
func streamErrorPayload(err error) sse.ErrorPayload {
	_, message := mapServiceErrorToUserMessage(err)
	code := StreamErrorCodeInternal
	if errors.Is(err, domain.ErrInventoryFull) {
		code = domain.StopReasonInventoryFull.String()
	}
	return sse.ErrorPayload{Error: message, Code: code}
}
