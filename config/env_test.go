package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironmentDefaultsToDevelopment(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
	assert.False(t, IsProduction())
}

func TestGetEnvironmentUnknownValueIsDevelopment(t *testing.T) {
	t.Setenv("ENV", "staging")
	assert.Equal(t, Development, GetEnvironment())
}

func TestGetEnvironmentProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())
}
