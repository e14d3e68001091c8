package service_test

import (
	"log"
	"os"
	"testing"

	"show-booking/internal/testutil"
	"show-booking/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap/zapcore"
)

var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	logger.SetLevel(zapcore.WarnLevel)

	pool, cleanup, err := testutil.Setup()
	if err != nil {
		log.Printf("Skipping database tests: %v", err)
	} else {
		testDB = pool
	}

	log.Println("Running service tests...")
	code := m.Run()

	if cleanup != nil {
		cleanup()
	}
	os.Exit(code)
}

func setupTest(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testutil.RequireDB(t, testDB)
	return testDB
}
