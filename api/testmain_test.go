package api_test

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"go.uber.org/goleak"

	"github.com/garnizeh/crewtrack/api"
)

func TestMain(m *testing.M) {
	api.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	// verify no goroutine leaks across tests in this package
	defer goleak.VerifyTestMain(m)
	os.Exit(m.Run())
}
