package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyBuilderPrefix(t *testing.T) {
	tests := []struct {
		environment string
		wantPrefix  string
	}{
		{"production", "prod"},
		{"development", "staging"},
		{"staging", "staging"},
		{"test", "staging"},
		{"", "prod"},
		{"anything-else", "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.wantPrefix, kb.GetPrefix())
		})
	}
}

func TestKeyBuilderPatterns(t *testing.T) {
	kb := NewKeyBuilder("production")

	assert.Equal(t, "prod:channel:abc:stats", kb.KeyChannelStats("abc"))
	assert.Equal(t, "prod:channel:alice:profile", kb.KeyChannelProfile("alice"))
	assert.Equal(t, "prod:video:v1", kb.KeyVideoByID("v1"))
	assert.Equal(t, "prod:video:v1:views", kb.KeyVideoViews("v1"))
	assert.Equal(t, "prod:channel:abc:subtotal", kb.KeySubscriberTotal("abc"))
	assert.Equal(t, "prod:sessions:42", kb.KeyCustom("sessions:%d", 42))
}
