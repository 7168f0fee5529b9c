package rpc

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lumenstake/native/lpstaking"
	"lumenstake/observability/metrics"
)

const (
	jsonRPCVersion  = "2.0"
	maxRequestBytes = 1 << 20 // 1 MiB
)

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeUnauthorized   = -32001
	codeServerError    = -32000
)

// Server exposes the staking engine over JSON-RPC 2.0.
type Server struct {
	engine    *lpstaking.Engine
	authToken string
	metrics   *metrics.LPStakingMetrics
}

// NewServer wires a JSON-RPC server around the staking engine. Mutating
// methods require the bearer token when one is configured; an empty token
// disables them entirely.
func NewServer(engine *lpstaking.Engine, authToken string) *Server {
	return &Server{
		engine:    engine,
		authToken: strings.TrimSpace(authToken),
		metrics:   metrics.LPStaking(),
	}
}

// Handler returns the HTTP handler serving the RPC endpoint and prometheus
// metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handle)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Start serves the RPC endpoint on addr until ctx is cancelled or the
// listener fails. Cancellation drains in-flight requests before returning.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type RPCRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
	ID      interface{}       `json:"id"`
}

type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeError(w http.ResponseWriter, status int, id interface{}, code int, message string) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	resp := RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Error: &RPCError{Code: code, Message: message}}
	_ = json.NewEncoder(w).Encode(resp)
}

func writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Result: result}
	_ = json.NewEncoder(w).Encode(resp)
}

// handle is the main request handler that routes to specific handlers.
func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	reader := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	defer func() {
		_ = reader.Close()
	}()

	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, nil, codeInvalidRequest, "POST required")
		return
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "failed to read request body")
		return
	}
	var req RPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "invalid JSON-RPC request")
		return
	}
	if req.JSONRPC != "" && req.JSONRPC != jsonRPCVersion {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidRequest, "unsupported JSON-RPC version")
		return
	}

	if mutatingMethods[req.Method] {
		if !s.authorized(r) {
			writeError(w, http.StatusUnauthorized, req.ID, codeUnauthorized, "unauthorized")
			return
		}
	}

	handler, ok := s.routes()[req.Method]
	if !ok {
		writeError(w, http.StatusNotFound, req.ID, codeMethodNotFound, "method not found")
		return
	}
	result, err := handler(req.Params)
	if err != nil {
		s.metrics.ObserveFailure(req.Method)
		status, code := classifyError(err)
		writeError(w, status, req.ID, code, err.Error())
		return
	}
	writeResult(w, req.ID, result)
}

func (s *Server) authorized(r *http.Request) bool {
	if s.authToken == "" {
		return false
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	supplied := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(s.authToken)) == 1
}

var mutatingMethods = map[string]bool{
	"lpstaking_addPool":       true,
	"lpstaking_removePool":    true,
	"lpstaking_setMerkleRoot": true,
	"lpstaking_setRewardRate": true,
	"lpstaking_setAdmin":      true,
	"lpstaking_adminSetStake": true,
	"lpstaking_withdraw":      true,
	"lpstaking_fund":          true,
	"lpstaking_stake":         true,
	"lpstaking_claim":         true,
	"lpstaking_unstake":       true,
}

type handlerFunc func(params []json.RawMessage) (interface{}, error)

func (s *Server) routes() map[string]handlerFunc {
	return map[string]handlerFunc{
		"lpstaking_addPool":       s.handleAddPool,
		"lpstaking_removePool":    s.handleRemovePool,
		"lpstaking_setMerkleRoot": s.handleSetMerkleRoot,
		"lpstaking_setRewardRate": s.handleSetRewardRate,
		"lpstaking_setAdmin":      s.handleSetAdmin,
		"lpstaking_adminSetStake": s.handleAdminSetStake,
		"lpstaking_withdraw":      s.handleWithdraw,
		"lpstaking_fund":          s.handleFund,
		"lpstaking_stake":         s.handleStake,
		"lpstaking_claim":         s.handleClaim,
		"lpstaking_unstake":       s.handleUnstake,
		"lpstaking_pendingReward": s.handlePendingReward,
		"lpstaking_stakerInfo":    s.handleStakerInfo,
		"lpstaking_poolState":     s.handlePoolState,
		"lpstaking_merkleRoot":    s.handleMerkleRoot,
		"lpstaking_poolCount":     s.handlePoolCount,
		"lpstaking_poolId":        s.handlePoolID,
		"lpstaking_rewardBalance": s.handleRewardBalance,
	}
}

func classifyError(err error) (int, int) {
	switch {
	case errors.Is(err, lpstaking.ErrUnauthorized):
		return http.StatusForbidden, codeUnauthorized
	case errors.Is(err, lpstaking.ErrInvalidAmount),
		errors.Is(err, lpstaking.ErrAmountOverflow),
		errors.Is(err, lpstaking.ErrInvalidProof),
		errors.Is(err, lpstaking.ErrPoolNotFound),
		errors.Is(err, lpstaking.ErrPoolExists),
		errors.Is(err, lpstaking.ErrNoMerkleRoot),
		errors.Is(err, lpstaking.ErrAlreadyStakedThisEpoch),
		errors.Is(err, lpstaking.ErrNoStakeFound),
		errors.Is(err, lpstaking.ErrNoRewardsToClaim),
		errors.Is(err, lpstaking.ErrInsufficientRewardBalance),
		errors.Is(err, lpstaking.ErrAlreadyInitialized),
		errors.Is(err, lpstaking.ErrNotInitialized):
		return http.StatusBadRequest, codeInvalidParams
	default:
		return http.StatusInternalServerError, codeServerError
	}
}
