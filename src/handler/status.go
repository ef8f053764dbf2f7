package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/autotrade/src/autotrade"
	"github.com/jiaming2012/autotrade/src/strategy"
)

const snapshotTimeout = 5 * time.Second

type StatusSource interface {
	Snapshots(ctx context.Context) ([]strategy.Snapshot, error)
	Snapshot(ctx context.Context, symbol string) (strategy.Snapshot, error)
}

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func NewErrorResponse(errType string, message string) *errorResponse {
	return &errorResponse{
		Type: errType,
		Msg:  message,
	}
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := NewErrorResponse(errType, err.Error())
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		log.Errorf("setErrorResponse: encode: %v", encodeErr)
	}
}

type statusHandler struct {
	source StatusSource
}

func (h *statusHandler) handleStrategies(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(404)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), snapshotTimeout)
	defer cancel()

	snapshots, err := h.source.Snapshots(ctx)
	if err != nil {
		setErrorResponse("handleStrategies: failed to fetch snapshots", 500, err, w)
		return
	}

	if err := setResponse(snapshots, w); err != nil {
		log.Errorf("handleStrategies: %v", err)
	}
}

func (h *statusHandler) handleStrategy(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(404)
		return
	}

	symbol := mux.Vars(r)["symbol"]

	ctx, cancel := context.WithTimeout(r.Context(), snapshotTimeout)
	defer cancel()

	snapshot, err := h.source.Snapshot(ctx, symbol)
	if err != nil {
		if errors.Is(err, autotrade.ErrUnknownSymbol) {
			setErrorResponse("handleStrategy: unknown symbol", 404, err, w)
			return
		}

		setErrorResponse("handleStrategy: failed to fetch snapshot", 500, err, w)
		return
	}

	if err := setResponse(snapshot, w); err != nil {
		log.Errorf("handleStrategy: %v", err)
	}
}

func SetupHandler(router *mux.Router, source StatusSource) {
	h := &statusHandler{source: source}

	router.HandleFunc("/strategies", h.handleStrategies)
	router.HandleFunc("/strategies/{symbol}", h.handleStrategy)
}

func NewRouter(source StatusSource) *mux.Router {
	router := mux.NewRouter()
	SetupHandler(router, source)
	return router
}
