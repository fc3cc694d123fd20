package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/trustmesh/newsverify/src/newsbot/config"
	"github.com/trustmesh/newsverify/src/verifier"
	"github.com/trustmesh/newsverify/src/verifier/types"
)

const verifyTimeout = 5 * time.Minute

// Bot answers !verify commands with an authenticity report for the pasted
// article text.
type Bot struct {
	config  *config.Config
	session *discordgo.Session
	pipe    *verifier.Pipeline
	limiter *RateLimiter
}

func New(cfg *config.Config, pipe *verifier.Pipeline) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	cooldown := time.Duration(cfg.CooldownSecs) * time.Second
	if cooldown <= 0 {
		cooldown = time.Minute
	}

	b := &Bot{
		config:  cfg,
		session: session,
		pipe:    pipe,
		limiter: NewRateLimiter(cooldown),
	}
	b.limiter.StartCleanup(10 * time.Minute)

	b.initHandlers()
	return b, nil
}

func (b *Bot) initHandlers() {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("News bot logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})

	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author.ID == s.State.User.ID {
			return
		}

		content := strings.TrimSpace(m.Content)
		if strings.HasPrefix(content, "!verify") {
			b.handleVerify(s, m, strings.TrimSpace(strings.TrimPrefix(content, "!verify")))
		}
	})
}

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Stop() {
	if b.session != nil {
		b.session.Close()
	}
}

func (b *Bot) handleVerify(s *discordgo.Session, m *discordgo.MessageCreate, article string) {
	if b.config.VerifyRoleID != "" && !b.hasRole(s, b.config.GuildID, m.Author.ID, b.config.VerifyRoleID) {
		s.ChannelMessageSend(m.ChannelID, "You don't have permission to use this command.")
		return
	}

	if !b.limiter.CanUse(m.Author.ID) {
		wait := b.limiter.TimeUntilNext(m.Author.ID).Round(time.Second)
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Please wait %s before verifying another article.", wait))
		return
	}

	if article == "" {
		s.ChannelMessageSend(m.ChannelID, "Usage: `!verify <article text>`")
		return
	}

	s.ChannelTyping(m.ChannelID)
	initialMsg, _ := s.ChannelMessageSend(m.ChannelID, "🔍 Checking claims against trusted outlets...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
		defer cancel()

		result, err := b.pipe.Run(ctx, types.NewsInput{Text: article})
		if err != nil {
			log.Printf("newsbot: verification for %s degraded: %v", m.Author.ID, err)
		}

		report := formatResult(result)
		if initialMsg != nil {
			s.ChannelMessageEdit(m.ChannelID, initialMsg.ID, report)
		} else {
			s.ChannelMessageSend(m.ChannelID, report)
		}
	}()
}

func formatResult(r types.VerificationResult) string {
	emoji := "❓"
	switch r.Verdict {
	case types.VerdictAuthentic, types.VerdictMostlyAuthentic:
		emoji = "✅"
	case types.VerdictMostlyFalse, types.VerdictFalse:
		emoji = "❌"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s **Verdict: %s**\n", emoji, r.Verdict)
	fmt.Fprintf(&sb, "Fake likelihood: %d%% | Confidence: %d%%\n", r.FakePercentage, r.ConfidenceScore)

	if len(r.SupportingLinks) > 0 {
		sb.WriteString("\n**Evidence:**\n")
		for i, link := range r.SupportingLinks {
			if i == 5 {
				break
			}
			mark := "❌"
			if link.Supports {
				mark = "✅"
			}
			fmt.Fprintf(&sb, "%s %s - <%s>\n", mark, link.Source, link.URL)
		}
	} else {
		sb.WriteString("\nNo evidence links found in trusted outlets.")
	}
	return sb.String()
}

func (b *Bot) hasRole(s *discordgo.Session, guildID, userID, roleID string) bool {
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		return false
	}
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}
