package openai

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
	baseURL string
}

func (c fakeConfig) GetModel() string                  { return "openai:gpt-4.1" }
func (c fakeConfig) GetTemperature() float64           { return 0.3 }
func (c fakeConfig) GetBaseURL(string) (string, error) { return c.baseURL, nil }
func (c fakeConfig) GetToken(string) (string, error)   { return "sk-test", nil }

func TestComplete(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     string
		wantKind chatbot.BackendErrorKind
	}{
		{
			name:   "message output",
			status: http.StatusOK,
			body:   `{"output":[{"type":"reasoning","content":[]},{"type":"message","content":[{"type":"output_text","text":"Hello!"}]}]}`,
			want:   "Hello!",
		},
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"message":"Incorrect API key"}}`,
			wantKind: chatbot.KindAuth,
		},
		{
			name:     "empty output",
			status:   http.StatusOK,
			body:     `{"output":[]}`,
			wantKind: chatbot.KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/responses" {
					t.Errorf("path = %s", r.URL.Path)
				}
				if r.Header.Get("Authorization") != "Bearer sk-test" {
					t.Errorf("authorization = %q", r.Header.Get("Authorization"))
				}
				var req ResponsesAPIRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decode request: %v", err)
				}
				if req.Model != "gpt-4.1" || req.Input != "User: Hi" {
					t.Errorf("request = %+v", req)
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			logger, _ := test.NewNullLogger()
			got, err := NewProvider(fakeConfig{baseURL: srv.URL}, logger).Complete(context.Background(), "User: Hi")
			if tt.wantKind != "" {
				var be *chatbot.BackendError
				if !errors.As(err, &be) || be.Kind != tt.wantKind {
					t.Fatalf("Complete() error = %v, want kind %s", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Complete() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Complete() = %q, want %q", got, tt.want)
			}
		})
	}
}
