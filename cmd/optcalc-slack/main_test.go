package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRequiresTokens(t *testing.T) {
	tests := []struct {
		name     string
		appToken string
		botToken string
	}{
		{"no tokens", "", ""},
		{"no bot token", "xapp-1", ""},
		{"no app token", "", "xoxb-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SLACK_APP_TOKEN", tt.appToken)
			t.Setenv("SLACK_BOT_TOKEN", tt.botToken)

			var stderr bytes.Buffer
			assert.Equal(t, 1, run(&stderr))
			assert.Contains(t, stderr.String(), "SLACK_APP_TOKEN and SLACK_BOT_TOKEN must be set")
		})
	}
}

func TestRunBadConfig(t *testing.T) {
	t.Setenv("SLACK_APP_TOKEN", "xapp-1")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-1")
	t.Setenv("OPTCALC_LOG_LEVEL", "loud")

	var stderr bytes.Buffer
	assert.Equal(t, 1, run(&stderr))
	assert.Contains(t, stderr.String(), "invalid config")
}
