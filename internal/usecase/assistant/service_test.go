package assistant

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"sankofa/internal/mocks"
	appErrors "sankofa/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func provider(ctrl *gomock.Controller, name string) *mocks.MockProvider {
	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().Name().Return(name).AnyTimes()
	return p
}

func TestChat_FirstProviderWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	ollama := provider(ctrl, "ollama")
	openai := provider(ctrl, "openai")

	ollama.EXPECT().Reply(gomock.Any(), "How do I recycle?").Return("  Sort by type.  ", nil)

	resp, err := NewService(ollama, openai).Chat(context.Background(), &ChatRequest{Message: "How do I recycle?"})
	require.NoError(t, err)
	assert.Equal(t, "Sort by type.", resp.Reply)
	assert.Equal(t, "ollama", resp.Source)
}

func TestChat_FallsThroughInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	ollama := provider(ctrl, "ollama")
	openai := provider(ctrl, "openai")

	gomock.InOrder(
		ollama.EXPECT().Reply(gomock.Any(), gomock.Any()).Return("", errors.New("connection refused")),
		openai.EXPECT().Reply(gomock.Any(), gomock.Any()).Return("From OpenAI", nil),
	)

	resp, err := NewService(ollama, openai).Chat(context.Background(), &ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "openai", resp.Source)
}

func TestChat_StaticWhenProvidersFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	ollama := provider(ctrl, "ollama")
	openai := provider(ctrl, "openai")

	ollama.EXPECT().Reply(gomock.Any(), gomock.Any()).Return("", errors.New("timeout"))
	openai.EXPECT().Reply(gomock.Any(), gomock.Any()).Return("   ", nil)

	resp, err := NewService(ollama, openai).Chat(context.Background(), &ChatRequest{Message: "How do I redeem my TOKENS?"})
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, resp.Source)
	assert.Contains(t, resp.Reply, "NHIS")
}

func TestChat_DefaultReply(t *testing.T) {
	resp, err := NewService().Chat(context.Background(), &ChatRequest{Message: "good morning"})
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, resp.Source)
	assert.NotEmpty(t, resp.Reply)
}

func TestChat_Validation(t *testing.T) {
	svc := NewService()

	_, err := svc.Chat(context.Background(), &ChatRequest{})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))

	_, err = svc.Chat(context.Background(), &ChatRequest{Message: strings.Repeat("a", 2001)})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))

	_, err = svc.Chat(context.Background(), &ChatRequest{Message: "   "})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))
}

func TestStaticReply(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"Where is the nearest hub?", "Collection hubs"},
		{"When do I get paid?", "wallet"},
		{"I want to donate", "Donations fund"},
		{"Do you take sachet water bags?", "PET, HDPE"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			reply, ok := StaticReply(tt.message)
			require.True(t, ok)
			assert.Contains(t, reply, tt.want)
		})
	}

	_, ok := StaticReply("good morning")
	assert.False(t, ok)
}
