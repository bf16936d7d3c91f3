package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mekongworks/sitekit/internal/locale"
)

type stubProvider struct {
	answer string
	err    error
}

func (s *stubProvider) Reply(context.Context, string, locale.Locale) (string, error) {
	return s.answer, s.err
}

func TestChatUsesProvider(t *testing.T) {
	svc := NewService(&stubProvider{answer: "We build web platforms."}, ServiceConfig{}, nil)

	reply := svc.Chat(context.Background(), "what do you do?", locale.English)
	if reply.Source != SourceModel {
		t.Fatalf("expected model reply, got %+v", reply)
	}
	if reply.Message != "We build web platforms." {
		t.Fatalf("unexpected message %q", reply.Message)
	}
}

func TestChatNeverEmpty(t *testing.T) {
	tests := []struct {
		name string
		svc  *Service
	}{
		{"no provider", NewService(nil, ServiceConfig{}, nil)},
		{"quota exhausted", NewService(&stubProvider{err: errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")}, ServiceConfig{}, nil)},
		{"provider failure", NewService(&stubProvider{err: errors.New("connection refused")}, ServiceConfig{}, nil)},
		{"blank answer", NewService(&stubProvider{answer: "   "}, ServiceConfig{}, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, target := range locale.Supported() {
				reply := tt.svc.Chat(context.Background(), "hello", target)
				if strings.TrimSpace(reply.Message) == "" {
					t.Fatalf("empty reply for locale %s", target)
				}
				if reply.Source != SourceFallback {
					t.Fatalf("expected fallback reply, got %+v", reply)
				}
			}
		})
	}
}

func TestCannedReplyKeywords(t *testing.T) {
	tests := []struct {
		name    string
		message string
		target  locale.Locale
		want    string
	}{
		{"services in english", "What services do you offer?", locale.English, "use-cases section"},
		{"pricing in vietnamese", "Cho tôi xin báo giá", locale.Vietnamese, "báo giá"},
		{"careers in japanese", "採用について教えてください", locale.Japanese, "採用ページ"},
		{"english keywords on vi page", "how much does a project cost?", locale.Vietnamese, "Chi phí"},
		{"no match", "tell me a joke", locale.English, "cannot answer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CannedReply(tt.message, tt.target)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("CannedReply(%q, %s) = %q, want substring %q", tt.message, tt.target, got, tt.want)
			}
		})
	}
}

func TestCannedReplyCarriesContactSignature(t *testing.T) {
	for _, target := range locale.Supported() {
		reply := CannedReply("anything at all", target)
		if !strings.Contains(reply, "hello@mekongworks.com") {
			t.Fatalf("reply for %s lacks contact signature: %q", target, reply)
		}
	}
}

func TestIsQuotaExhausted(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("googleapi: Error 429"), true},
		{errors.New("rpc error: code = ResourceExhausted desc = Quota exceeded"), true},
		{errors.New("RESOURCE_EXHAUSTED"), true},
		{errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		if got := IsQuotaExhausted(tt.err); got != tt.want {
			t.Fatalf("IsQuotaExhausted(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
