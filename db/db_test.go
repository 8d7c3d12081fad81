package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codecourt/judge-engine/config"
)

func TestNewFailsAgainstUnreachableDatabase(t *testing.T) {
	// This is a simple test to ensure the package compiles and that a
	// connection failure is surfaced as an error rather than a panic.
	// In a real environment this would run against a test database.
	cfg := &config.Config{
		DBHost:     "localhost",
		DBPort:     1,
		DBUser:     "postgres",
		DBPassword: "postgres",
		DBName:     "judge_engine_test",
		DBSSLMode:  "disable",
	}

	_, err := New(cfg)
	assert.Error(t, err)
}
