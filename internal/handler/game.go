package handler

import (
	"net/http"
	"time"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/farm"
	"github.com/osse101/Homestead_Go/internal/logger"
)

// SyncRequest resumes a session. The username is already authenticated upstream.
type SyncRequest struct {
	Username string `json:"username" validate:"required,max=100"`
}

// ActionRequest asks the engine to apply one player action
type ActionRequest struct {
	Username     string `json:"username" validate:"required,max=100"`
	Action       string `json:"action" validate:"required,action"`
	SlotID       string `json:"slotId" validate:"required,max=64"`
	CropMasterID string `json:"cropMasterId" validate:"max=64"`
}

// SyncData is the payload of a successful sync
type SyncData struct {
	User        domain.Snapshot    `json:"user"`
	ServerTime  int64              `json:"serverTime"`
	Provisioned bool               `json:"provisioned"`
	Events      []domain.SyncEvent `json:"events"`
}

// ActionData is the payload of a successful action
type ActionData struct {
	Outcome     domain.ActionOutcome `json:"outcome"`
	GoldDelta   int64                `json:"goldDelta"`
	LedgerEntry *domain.LedgerEntry  `json:"ledgerEntry,omitempty"`
	User        domain.Snapshot      `json:"user"`
	ServerTime  int64                `json:"serverTime"`
}

// LedgerData is the payload of a ledger history request
type LedgerData struct {
	Username string               `json:"username"`
	Entries  []domain.LedgerEntry `json:"entries"`
}

// GameHandler serves the session and action endpoints
type GameHandler struct {
	farmSvc farm.Service
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(farmSvc farm.Service) *GameHandler {
	return &GameHandler{farmSvc: farmSvc}
}

// Sync handles POST /api/v1/game/sync
func (h *GameHandler) Sync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req SyncRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sync"); err != nil {
		return
	}
	log.Debug(LogMsgSyncRequest, "username", req.Username)

	res, err := h.farmSvc.Sync(r.Context(), req.Username)
	if err != nil {
		log.Error(LogMsgSyncFailed, "username", req.Username, "error", err)
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, SyncData{
		User:        res.Snapshot,
		ServerTime:  millis(res.Snapshot.ServerTime),
		Provisioned: res.Provisioned,
		Events:      res.Events,
	})
}

// Action handles POST /api/v1/game/action
func (h *GameHandler) Action(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req ActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Action"); err != nil {
		return
	}
	log.Debug(LogMsgActionRequest, "username", req.Username, "action", req.Action, "slot_id", req.SlotID)

	action, err := domain.ParseAction(req.Action, req.SlotID, req.CropMasterID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	res, err := h.farmSvc.Execute(r.Context(), req.Username, action)
	if err != nil {
		log.Info(LogMsgActionFailed, "username", req.Username, "action", req.Action, "kind", domain.KindOf(err), "error", err)
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, ActionData{
		Outcome:     res.Outcome,
		GoldDelta:   res.GoldDelta,
		LedgerEntry: res.LedgerEntry,
		User:        res.Snapshot,
		ServerTime:  millis(res.Snapshot.ServerTime),
	})
}

// Ledger handles GET /api/v1/game/ledger?username=&limit=
func (h *GameHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	username, ok := GetQueryParam(r, w, "username")
	if !ok {
		return
	}
	limit, err := GetOptionalIntQueryParam(r, "limit", farm.DefaultLedgerLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return
	}

	entries, err := h.farmSvc.LedgerHistory(r.Context(), username, limit)
	if err != nil {
		logger.FromContext(r.Context()).Error(LogMsgLedgerFailed, "username", username, "error", err)
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, LedgerData{Username: username, Entries: entries})
}

// VerifyLedger handles GET /api/v1/game/ledger/verify?username=
func (h *GameHandler) VerifyLedger(w http.ResponseWriter, r *http.Request) {
	username, ok := GetQueryParam(r, w, "username")
	if !ok {
		return
	}

	report, err := h.farmSvc.VerifyLedger(r.Context(), username)
	if err != nil {
		logger.FromContext(r.Context()).Error(LogMsgLedgerFailed, "username", username, "error", err)
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, report)
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}
