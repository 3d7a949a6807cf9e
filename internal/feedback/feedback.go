// Package feedback accepts "speak up" submissions from the hub pages.
// Submissions are validated and logged; nothing is persisted.
package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/starford/hirelens/internal/apperr"
	"github.com/starford/hirelens/internal/metrics"
)

// MaxMessageRunes bounds the message length.
const MaxMessageRunes = 500

// Submission types.
const (
	TypeFeedback     = "feedback"
	TypeSuggestion   = "suggestion"
	TypeBug          = "bug"
	TypeComplaint    = "complaint"
	TypeAppreciation = "appreciation"
)

// Types lists the accepted submission types.
var Types = []string{TypeFeedback, TypeSuggestion, TypeBug, TypeComplaint, TypeAppreciation}

// Submission is one speak-up form.
type Submission struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Email     string `json:"email,omitempty"`
	Anonymous bool   `json:"anonymous"`
}

// Receipt acknowledges an accepted submission.
type Receipt struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ReceivedAt time.Time `json:"receivedAt"`
}

func (s *Submission) normalize() {
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	if s.Type == "" {
		s.Type = TypeFeedback
	}
	s.Title = strings.TrimSpace(s.Title)
	s.Message = strings.TrimSpace(s.Message)
	s.Email = strings.TrimSpace(s.Email)
	if s.Anonymous {
		s.Email = ""
	}
}

// Validate checks the submission after normalization.
func (s Submission) Validate() error {
	types := make([]any, len(Types))
	for i, t := range Types {
		types[i] = t
	}
	return validation.ValidateStruct(&s,
		validation.Field(&s.Type, validation.Required, validation.In(types...)),
		validation.Field(&s.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&s.Message, validation.Required, validation.RuneLength(1, MaxMessageRunes)),
		validation.Field(&s.Email, is.EmailFormat),
	)
}

// Service handles submissions.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService creates a Service. m may be nil.
func NewService(logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, metrics: m, now: time.Now}
}

// Submit validates and records sub.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Receipt, error) {
	sub.normalize()
	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}

	r := &Receipt{ID: uuid.NewString(), Type: sub.Type, ReceivedAt: s.now().UTC()}
	attrs := []any{
		slog.String("id", r.ID),
		slog.String("type", sub.Type),
		slog.String("title", sub.Title),
		slog.Int("message_len", len([]rune(sub.Message))),
		slog.Bool("anonymous", sub.Anonymous),
	}
	if sub.Email != "" {
		attrs = append(attrs, slog.String("email", sub.Email))
	}
	s.logger.InfoContext(ctx, "feedback: received", attrs...)
	s.metrics.FeedbackAccepted(sub.Type)
	return r, nil
}
