package assistant

import (
	"context"
	"strings"

	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"go.uber.org/zap"
)

const (
	SourceStatic  = "static"
	SourceDefault = "default"

	defaultReply = "I'm Sankofa's assistant. I can help with recycling plastic, earning and redeeming health tokens, " +
		"finding collection hubs, payouts and donations. What would you like to know?"
)

// Provider is a language model backend.
type Provider interface {
	Name() string
	Reply(ctx context.Context, prompt string) (string, error)
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type ChatResponse struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
}

type staticReply struct {
	keywords []string
	reply    string
}

// Checked in order; the first topic with a matching keyword answers.
var staticReplies = []staticReply{
	{
		keywords: []string{"token", "nhis", "health insurance", "redeem"},
		reply: "Every verified kilogram of plastic earns health tokens. You can redeem them towards NHIS " +
			"enrollment or renewal from your wallet.",
	},
	{
		keywords: []string{"hub", "drop off", "drop-off", "where"},
		reply: "Collection hubs weigh and verify your plastic. Check the hubs list for one near you; hubs marked " +
			"full are not accepting drop-offs until they are emptied.",
	},
	{
		keywords: []string{"payment", "payout", "cash", "momo", "mobile money", "paid"},
		reply: "Cash earned from verified collections builds up in your wallet. Hub managers pay it out by mobile " +
			"money, bank transfer or cash.",
	},
	{
		keywords: []string{"donat", "support", "give", "contribute"},
		reply: "Donations fund collector payouts and community health programmes. You can give once or set up a " +
			"monthly, quarterly or annual donation through Paystack.",
	},
	{
		keywords: []string{"recycl", "plastic", "pet", "hdpe", "bottle", "sachet"},
		reply: "We accept PET, HDPE, LDPE, PP, PS and other plastics. Rinse and sort them by type; PET bottles " +
			"earn the most per kilogram.",
	},
}

// Service answers chat messages through the configured providers, falling
// back to canned replies when none of them respond.
type Service struct {
	providers []Provider
}

func NewService(providers ...Provider) *Service {
	active := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			active = append(active, p)
		}
	}
	return &Service{providers: active}
}

func (s *Service) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, appErrors.NewAppError("EMPTY_MESSAGE", "message is required", nil)
	}

	for _, p := range s.providers {
		reply, err := p.Reply(ctx, message)
		if err != nil {
			logger.Warn("Assistant provider failed",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			continue
		}
		if reply = strings.TrimSpace(reply); reply != "" {
			return &ChatResponse{Reply: reply, Source: p.Name()}, nil
		}
	}

	if reply, ok := StaticReply(message); ok {
		return &ChatResponse{Reply: reply, Source: SourceStatic}, nil
	}
	return &ChatResponse{Reply: defaultReply, Source: SourceDefault}, nil
}

// StaticReply returns the canned answer for the first topic message mentions.
func StaticReply(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, topic := range staticReplies {
		for _, kw := range topic.keywords {
			if strings.Contains(lower, kw) {
				return topic.reply, true
			}
		}
	}
	return "", false
}
