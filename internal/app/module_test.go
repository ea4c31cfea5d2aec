package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/familybank/allowance/internal/config"
	"github.com/familybank/allowance/internal/domain/model"
	testhelpers "github.com/familybank/allowance/internal/test/facade"
	"github.com/familybank/allowance/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testSweeper() *worker.CatchupSweeper {
	return worker.NewCatchupSweeper(&testhelpers.SweeperFacadeStub{}, time.Hour, 1, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	server := newHTTPServer(serverParams{
		Config: &config.Config{RunAddress: ":9999"},
		Router: router,
	})

	if server.Addr != ":9999" {
		t.Fatalf("expected addr :9999, got %q", server.Addr)
	}
	if server.Handler == nil {
		t.Fatal("expected router to be attached")
	}
}

func TestNewCatchupSweeperUsesConfig(t *testing.T) {
	sweeper := newCatchupSweeper(workerParams{
		Facade: &AllowanceFacade{},
		Config: &config.Config{SweepInterval: time.Hour, SweepWorkers: 2},
		Logger: discardLogger(),
	})
	if sweeper == nil {
		t.Fatal("expected sweeper")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	sweeper := testSweeper()
	defer sweeper.Stop()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)},
		Logger:     discardLogger(),
		Server:     server,
		Worker:     sweeper,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one lifecycle hook, got %d", len(recorder.Hooks))
	}
	hook := recorder.Hooks[0]

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if err := hook.OnStop(context.Background()); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
}

func TestRegisterLifecycleSweeperOutlivesStartup(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	facade := &testhelpers.SweeperFacadeStub{
		ChildrenFn: func(context.Context) ([]model.User, error) {
			return []model.User{{ID: 1}}, nil
		},
	}
	sweeper := worker.NewCatchupSweeper(facade, 10*time.Millisecond, 1, discardLogger())

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)},
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		Worker:     sweeper,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	// fx cancels the OnStart context as soon as startup finishes; the sweeper
	// must keep sweeping until OnStop.
	startCtx, cancel := context.WithCancel(context.Background())
	if err := recorder.Hooks[0].OnStart(startCtx); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	cancel()

	deadline := time.Now().Add(time.Second)
	for facade.CatchupCount() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("expected sweeps to continue after startup, got %d", facade.CatchupCount())
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := recorder.Hooks[0].OnStop(context.Background()); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
}

func TestRegisterLifecycleShutsDownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	sweeper := testSweeper()
	defer sweeper.Stop()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "not a valid address"},
		Worker:     sweeper,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := recorder.Hooks[0].OnStart(ctx); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown after server failure")
	}
}
