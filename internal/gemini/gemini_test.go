package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeConfig struct {
	model   string
	baseURL string
	token   string
}

func (c fakeConfig) GetModel() string        { return c.model }
func (c fakeConfig) GetTemperature() float64 { return 0.3 }
func (c fakeConfig) GetBaseURL(string) (string, error) {
	return c.baseURL, nil
}
func (c fakeConfig) GetToken(string) (string, error) {
	if c.token == "" {
		return "", fmt.Errorf("gemini token is not configured")
	}
	return c.token, nil
}

func newProvider(baseURL, token string) *Provider {
	logger, _ := test.NewNullLogger()
	return NewProvider(fakeConfig{model: "gemini:gemini-2.0-flash", baseURL: baseURL, token: token}, logger)
}

func TestCompleteSuccess(t *testing.T) {
	var got GeminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.0-flash:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "key" {
			t.Errorf("api key header = %q", r.Header.Get("x-goog-api-key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello"},{"text":"!"}]}}]}`)
	}))
	defer srv.Close()

	reply, err := newProvider(srv.URL, "key").Complete(context.Background(), "System: s\nUser: Hi")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "Hello!" {
		t.Errorf("Complete() = %q", reply)
	}
	if len(got.Contents) != 1 || got.Contents[0].Parts[0].Text != "System: s\nUser: Hi" {
		t.Errorf("request contents = %+v", got.Contents)
	}
	if got.GenerationConfig == nil || *got.GenerationConfig.Temperature != 0.3 {
		t.Errorf("generation config = %+v", got.GenerationConfig)
	}
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   chatbot.BackendErrorKind
	}{
		{name: "bad key", status: http.StatusForbidden, body: `{"error":{"code":403,"message":"API key not valid"}}`, want: chatbot.KindAuth},
		{name: "quota", status: http.StatusTooManyRequests, body: `{"error":{"code":429,"message":"quota"}}`, want: chatbot.KindQuota},
		{name: "server", status: http.StatusInternalServerError, body: `oops`, want: chatbot.KindRemote},
		{name: "not json", status: http.StatusOK, body: `<html>`, want: chatbot.KindMalformed},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`, want: chatbot.KindMalformed},
		{name: "empty parts", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[]},"finishReason":"SAFETY"}]}`, want: chatbot.KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := newProvider(srv.URL, "key").Complete(context.Background(), "User: Hi")
			var be *chatbot.BackendError
			if !errors.As(err, &be) {
				t.Fatalf("Complete() error = %v, want *BackendError", err)
			}
			if be.Kind != tt.want || be.Provider != ProviderName {
				t.Errorf("Complete() error = %+v, want kind %s", be, tt.want)
			}
		})
	}
}

func TestCompleteMissingToken(t *testing.T) {
	_, err := newProvider("http://127.0.0.1:0", "").Complete(context.Background(), "User: Hi")
	var be *chatbot.BackendError
	if !errors.As(err, &be) || be.Kind != chatbot.KindAuth {
		t.Fatalf("Complete() error = %v, want auth backend error", err)
	}
}

func TestCompleteCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newProvider(srv.URL, "key").Complete(ctx, "User: Hi")
	if !chatbot.IsBackend(err) {
		t.Fatalf("Complete() error = %v, want backend error", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Complete() error = %v, want to wrap context.Canceled", err)
	}
}
