package testutils

import (
	"flag"
	"log"
	"os"
	"testing"
)

// RunPackage starts a TestEnvironment for one test package, runs m and exits. With -short
// the package is skipped without starting containers.
func RunPackage(m *testing.M, withNATS bool, set func(*TestEnvironment)) {
	flag.Parse()
	if testing.Short() {
		log.Println("Skipping integration tests in short mode")
		os.Exit(0)
	}

	env, err := NewTestEnvironment(withNATS)
	if err != nil {
		log.Fatalf("Failed to set up test environment: %v", err)
	}
	set(env)

	code := m.Run()
	env.Cleanup()
	os.Exit(code)
}
