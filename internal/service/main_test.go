package service

import (
	"os"
	"testing"

	"github.com/draftloom/manuscript/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}
