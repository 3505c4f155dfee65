package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/farm"
)

var serverTime = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGameHandler_Sync(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockFarmService{}
		svc.On("Sync", mock.Anything, "alice").Return(&domain.SyncResult{
			Snapshot:    domain.Snapshot{Wallet: domain.Wallet{Gold: 100}, ServerTime: serverTime},
			Provisioned: true,
			Events:      []domain.SyncEvent{},
		}, nil)

		w := postJSON(t, NewGameHandler(svc).Sync, SyncRequest{Username: "alice"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				User        domain.Snapshot    `json:"user"`
				ServerTime  int64              `json:"serverTime"`
				Provisioned bool               `json:"provisioned"`
				Events      []domain.SyncEvent `json:"events"`
			} `json:"data"`
			Timestamp int64 `json:"timestamp"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, serverTime.UnixMilli(), resp.Data.ServerTime)
		assert.Equal(t, int64(100), resp.Data.User.Wallet.Gold)
		assert.True(t, resp.Data.Provisioned)
		assert.NotNil(t, resp.Data.Events)
		assert.NotZero(t, resp.Timestamp)
		svc.AssertExpectations(t)
	})

	t.Run("missing username", func(t *testing.T) {
		svc := &MockFarmService{}
		w := postJSON(t, NewGameHandler(svc).Sync, SyncRequest{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, ErrMsgInvalidRequestSummary, resp.Error)
		assert.Contains(t, resp.Fields, "username")
		svc.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := postJSON(t, NewGameHandler(&MockFarmService{}).Sync, "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrMsgInvalidRequest, decodeError(t, w).Error)
	})

	t.Run("internal failure hides cause", func(t *testing.T) {
		svc := &MockFarmService{}
		svc.On("Sync", mock.Anything, "alice").
			Return(nil, fmt.Errorf("%w: connection reset by peer", domain.ErrDatabaseError))

		w := postJSON(t, NewGameHandler(svc).Sync, SyncRequest{Username: "alice"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, domain.KindInternal, resp.Kind)
		assert.True(t, resp.Retryable)
		assert.Equal(t, ErrMsgGenericServerError, resp.Error)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

func TestGameHandler_Action(t *testing.T) {
	tests := []struct {
		name          string
		body          any
		setupMock     func(*MockFarmService)
		wantStatus    int
		wantKind      domain.ErrorKind
		wantRetryable bool
		wantError     string
	}{
		{
			name: "plant success",
			body: ActionRequest{Username: "alice", Action: "PLANT", SlotID: "s1", CropMasterID: "turnip"},
			setupMock: func(m *MockFarmService) {
				m.On("Execute", mock.Anything, "alice", domain.PlantAction{SlotID: "s1", CropMasterID: "turnip"}).
					Return(&domain.ActionResult{
						Outcome:   domain.OutcomePlanted,
						GoldDelta: -10,
						Snapshot:  domain.Snapshot{Wallet: domain.Wallet{Gold: 90}, ServerTime: serverTime},
					}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "lower-case harvest",
			body: ActionRequest{Username: "alice", Action: "harvest", SlotID: "s1"},
			setupMock: func(m *MockFarmService) {
				m.On("Execute", mock.Anything, "alice", domain.HarvestAction{SlotID: "s1"}).
					Return(&domain.ActionResult{Outcome: domain.OutcomeHarvested, GoldDelta: 20}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:          "unknown action",
			body:          ActionRequest{Username: "alice", Action: "WATER", SlotID: "s1"},
			wantStatus:    http.StatusBadRequest,
			wantKind:      domain.KindUnknownAction,
			wantRetryable: false,
			wantError:     ErrMsgUnknownActionError,
		},
		{
			name:       "missing slot",
			body:       ActionRequest{Username: "alice", Action: "PLANT"},
			wantStatus: http.StatusBadRequest,
			wantError:  ErrMsgInvalidRequestSummary,
		},
		{
			name: "slot not found",
			body: ActionRequest{Username: "alice", Action: "HARVEST", SlotID: "nope"},
			setupMock: func(m *MockFarmService) {
				m.On("Execute", mock.Anything, "alice", mock.Anything).Return(nil, domain.ErrSlotNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantKind:   domain.KindNotFound,
			wantError:  ErrMsgSlotNotFoundError,
		},
		{
			name: "slot occupied",
			body: ActionRequest{Username: "alice", Action: "PLANT", SlotID: "s1", CropMasterID: "turnip"},
			setupMock: func(m *MockFarmService) {
				m.On("Execute", mock.Anything, "alice", mock.Anything).
					Return(nil, fmt.Errorf("plant: %w", domain.ErrSlotOccupied))
			},
			wantStatus: http.StatusConflict,
			wantKind:   domain.KindConflict,
			wantError:  ErrMsgSlotOccupiedError,
		},
		{
			name: "insufficient funds",
			body: ActionRequest{Username: "alice", Action: "PLANT", SlotID: "s1", CropMasterID: "pumpkin"},
			setupMock: func(m *MockFarmService) {
				m.On("Execute", mock.Anything, "alice", mock.Anything).Return(nil, domain.ErrInsufficientFunds)
			},
			wantStatus: http.StatusBadRequest,
			wantKind:   domain.KindInsufficientFunds,
			wantError:  ErrMsgInsufficientFundsError,
		},
		{
			name: "not ready",
			body: ActionRequest{Username: "alice", Action: "HARVEST", SlotID: "s1"},
			setupMock: func(m *MockFarmService) {
				m.On("Execute", mock.Anything, "alice", mock.Anything).Return(nil, domain.ErrCropNotReady)
			},
			wantStatus: http.StatusBadRequest,
			wantKind:   domain.KindNotReady,
			wantError:  ErrMsgCropNotReadyError,
		},
		{
			name: "timeout is retryable",
			body: ActionRequest{Username: "alice", Action: "HARVEST", SlotID: "s1"},
			setupMock: func(m *MockFarmService) {
				m.On("Execute", mock.Anything, "alice", mock.Anything).Return(nil, domain.ErrTransactionTimeout)
			},
			wantStatus:    http.StatusInternalServerError,
			wantKind:      domain.KindInternal,
			wantRetryable: true,
			wantError:     ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockFarmService{}
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			w := postJSON(t, NewGameHandler(svc).Action, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"success":true`)
			} else {
				resp := decodeError(t, w)
				assert.False(t, resp.Success)
				assert.Equal(t, tt.wantKind, resp.Kind)
				assert.Equal(t, tt.wantRetryable, resp.Retryable)
				assert.Equal(t, tt.wantError, resp.Error)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestGameHandler_Ledger(t *testing.T) {
	entries := []domain.LedgerEntry{{ID: "e2", Kind: domain.LedgerKindSeedPurchase, Amount: -10}}

	t.Run("default limit", func(t *testing.T) {
		svc := &MockFarmService{}
		svc.On("LedgerHistory", mock.Anything, "alice", farm.DefaultLedgerLimit).Return(entries, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/game/ledger?username=alice", nil)
		w := httptest.NewRecorder()
		NewGameHandler(svc).Ledger(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"kind":"SEED_PURCHASE"`)
		svc.AssertExpectations(t)
	})

	t.Run("explicit limit", func(t *testing.T) {
		svc := &MockFarmService{}
		svc.On("LedgerHistory", mock.Anything, "alice", 5).Return(entries, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/game/ledger?username=alice&limit=5", nil)
		w := httptest.NewRecorder()
		NewGameHandler(svc).Ledger(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("bad limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/game/ledger?username=alice&limit=-1", nil)
		w := httptest.NewRecorder()
		NewGameHandler(&MockFarmService{}).Ledger(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrMsgInvalidLimit, decodeError(t, w).Error)
	})

	t.Run("missing username", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/game/ledger", nil)
		w := httptest.NewRecorder()
		NewGameHandler(&MockFarmService{}).Ledger(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, fmt.Sprintf(ErrMsgMissingQueryParam, "username"), decodeError(t, w).Error)
	})

	t.Run("unknown player", func(t *testing.T) {
		svc := &MockFarmService{}
		svc.On("LedgerHistory", mock.Anything, "ghost", farm.DefaultLedgerLimit).Return(nil, domain.ErrPlayerNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/game/ledger?username=ghost", nil)
		w := httptest.NewRecorder()
		NewGameHandler(svc).Ledger(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, domain.KindNotFound, decodeError(t, w).Kind)
	})
}

func TestGameHandler_VerifyLedger(t *testing.T) {
	svc := &MockFarmService{}
	svc.On("VerifyLedger", mock.Anything, "alice").Return(&farm.LedgerReport{
		Gold: 110, LedgerSum: 110, EntryCount: 3, Consistent: true,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/game/ledger/verify?username=alice", nil)
	w := httptest.NewRecorder()
	NewGameHandler(svc).VerifyLedger(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"consistent":true`)
	assert.Contains(t, w.Body.String(), `"ledgerSum":110`)
	svc.AssertExpectations(t)
}

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind domain.ErrorKind
		want int
	}{
		{domain.KindNotFound, http.StatusNotFound},
		{domain.KindConflict, http.StatusConflict},
		{domain.KindInsufficientFunds, http.StatusBadRequest},
		{domain.KindNotReady, http.StatusBadRequest},
		{domain.KindUnknownAction, http.StatusBadRequest},
		{domain.KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, statusForKind(tt.kind))
		})
	}
}
