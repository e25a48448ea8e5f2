package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

func (kb *KeyBuilder) KeyChannelStats(channelID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyChannelStats, channelID))
}

func (kb *KeyBuilder) KeyChannelProfile(username string) string {
	return kb.BuildKey(fmt.Sprintf(KeyChannelProfile, username))
}

func (kb *KeyBuilder) KeyVideoByID(videoID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyVideoByID, videoID))
}

func (kb *KeyBuilder) KeyVideoViews(videoID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyVideoViews, videoID))
}

func (kb *KeyBuilder) KeySubscriberTotal(channelID string) string {
	return kb.BuildKey(fmt.Sprintf(KeySubscriberTot, channelID))
}

// KeyCustom builds an arbitrary prefixed key
func (kb *KeyBuilder) KeyCustom(pattern string, args ...interface{}) string {
	return kb.BuildKey(fmt.Sprintf(pattern, args...))
}
