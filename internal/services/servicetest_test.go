package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/repos/testutil"
)

// testDeps wires services against a rolled-back transaction so every test
// starts from a clean database.
type testDeps struct {
	tx  *gorm.DB
	log *logger.Logger
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	db := testutil.DB(t)
	return &testDeps{tx: testutil.Tx(t, db), log: testutil.Logger(t)}
}
