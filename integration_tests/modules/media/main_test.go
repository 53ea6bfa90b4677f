package mediaintegrationtests

import (
	"testing"

	"github.com/sh4ner/streamerpulse/integration_tests/testutils"
)

var testEnv *testutils.TestEnvironment

func TestMain(m *testing.M) {
	testutils.RunPackage(m, false, func(env *testutils.TestEnvironment) { testEnv = env })
}
