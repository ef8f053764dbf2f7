package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/autotrade/src/autotrade"
	"github.com/jiaming2012/autotrade/src/eventmodels"
	"github.com/jiaming2012/autotrade/src/handler"
	"github.com/jiaming2012/autotrade/src/strategy"
	"github.com/jiaming2012/autotrade/src/utils"
)

type ReplayArgs struct {
	ConfigPath string
	TicksPath  string
	StatusAddr string
}

type ReplayResult struct {
	Session   uuid.UUID
	Rows      int
	Skipped   int
	Snapshots []strategy.Snapshot
}

func ReadTicks(path string) ([]*eventmodels.TickRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadTicks: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var dtos []*eventmodels.TickRowDTO
	if err := gocsv.UnmarshalFile(f, &dtos); err != nil {
		return nil, fmt.Errorf("ReadTicks: failed to decode %s: %w", path, err)
	}

	rows := make([]*eventmodels.TickRow, 0, len(dtos))
	for i, dto := range dtos {
		row, err := dto.ToModel()
		if err != nil {
			return nil, fmt.Errorf("ReadTicks: row %d: %w", i+1, err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// Replay feeds every tick row through the engine, then closes all positions. When a status
// address is given, the status endpoints stay up until ctx is done.
func Replay(ctx context.Context, args ReplayArgs) (ReplayResult, error) {
	choices, err := utils.LoadChoices(args.ConfigPath)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("Replay: %w", err)
	}

	rows, err := ReadTicks(args.TicksPath)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("Replay: %w", err)
	}

	engine, err := autotrade.New(*choices)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("Replay: %w", err)
	}

	session := uuid.New()
	logger := log.WithFields(log.Fields{
		"session": session,
		"ticks":   args.TicksPath,
		"symbols": len(choices.Symbols),
	})
	logger.Info("replay started")

	engine.Start(context.Background())
	defer engine.Stop()

	var srv *http.Server
	if args.StatusAddr != "" {
		srv = &http.Server{Addr: args.StatusAddr, Handler: handler.NewRouter(engine)}
		go func() {
			log.Infof("status endpoints listening on %s", args.StatusAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("status server: %v", err)
			}
		}()
	}

	result := ReplayResult{Session: session, Rows: len(rows)}
	for _, row := range rows {
		field, ok := eventmodels.ParseTickField(row.Field)
		if !ok {
			log.Tracef("skipping unsupported field %q", row.Field)
			result.Skipped++
			continue
		}

		if err := engine.AcceptTick(row.Symbol, row.Timestamp, field, row.Value); err != nil {
			if errors.Is(err, autotrade.ErrUnknownSymbol) {
				log.Tracef("skipping unconfigured symbol %q", row.Symbol)
				result.Skipped++
				continue
			}

			return ReplayResult{}, fmt.Errorf("Replay: %w", err)
		}
	}

	if err := engine.CloseAndDone(ctx); err != nil {
		return ReplayResult{}, fmt.Errorf("Replay: %w", err)
	}

	result.Snapshots, err = engine.Snapshots(ctx)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("Replay: %w", err)
	}

	logger.WithField("skipped", result.Skipped).Info("replay finished")

	if srv != nil {
		logger.Info("serving status until interrupted")
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("status server shutdown: %v", err)
		}
	}

	return result, nil
}
