package ai

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustmesh/newsverify/src/shared/httpx"
)

func TestNewClientRejectsUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), FactoryConfig{Provider: "bard"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown AI provider")
}

func TestNewClientRequiresKeys(t *testing.T) {
	_, err := NewClient(context.Background(), FactoryConfig{Provider: "openai"})
	require.Error(t, err)

	_, err = NewClient(context.Background(), FactoryConfig{Provider: "gemini"})
	require.Error(t, err)
}

func TestOpenAIClientDefaults(t *testing.T) {
	c, err := NewClient(context.Background(), FactoryConfig{Provider: "openai", OpenAIKey: "k"})
	require.NoError(t, err)

	oc, ok := c.(*openAIClient)
	require.True(t, ok)
	assert.Equal(t, "gpt-5-mini", oc.model)
	assert.Equal(t, httpx.DefaultRetry, oc.retry)
}

func TestGeminiClientIsCloseable(t *testing.T) {
	// Service mains and the CLI release the connection via io.Closer.
	assert.Implements(t, (*io.Closer)(nil), &geminiClient{})
}
