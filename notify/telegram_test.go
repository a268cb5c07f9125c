package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evdnx/gosb/testutils"
)

func TestSendPostsToChat(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		got = map[string]string{
			"chat_id": r.PostFormValue("chat_id"),
			"text":    r.PostFormValue("text"),
		}
	}))
	defer srv.Close()

	n := NewTelegram("token", "42", testutils.NewMockLogger())
	n.apiURL = srv.URL
	n.Send("BTCUSDT BUY opened")

	if got["chat_id"] != "42" || got["text"] != "BTCUSDT BUY opened" {
		t.Fatalf("delivered %v", got)
	}
}

func TestSendDisabledWithoutToken(t *testing.T) {
	log := testutils.NewMockLogger()
	n := NewTelegram("", "42", log)
	n.Send("dropped") // must not attempt delivery
	if log.LastMessage() != "telegram_disabled" {
		t.Fatalf("expected the disabled warning, got %q", log.LastMessage())
	}
}

func TestSendFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	log := testutils.NewMockLogger()
	n := NewTelegram("token", "42", log)
	n.apiURL = srv.URL
	n.Send("anything") // must not panic or block
	if log.LastMessage() != "telegram_send_failed" {
		t.Fatalf("failure must be logged, got %q", log.LastMessage())
	}
}
