package sendgrid

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/yungbote/blockpage/internal/platform/logger"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(t *testing.T, rt roundTripperFunc, retries int) *client {
	t.Helper()
	c, err := New(logger.Nop(), Config{APIKey: "sg-key", DefaultFromEmail: "site@x.com", MaxRetries: retries})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cl := c.(*client)
	cl.httpClient.Transport = rt
	return cl
}

func TestSend_BuildsMailSendPayload(t *testing.T) {
	var got mailSendRequest
	cl := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/v3/mail/send" {
			t.Fatalf("path=%q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sg-key" {
			t.Fatalf("auth=%q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		h := http.Header{}
		h.Set("X-Message-Id", "msg-1")
		return &http.Response{StatusCode: http.StatusAccepted, Header: h, Body: io.NopCloser(strings.NewReader(""))}, nil
	}, 0)

	res, err := cl.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "sales@x.com"}},
		ReplyTo: &EmailAddress{Email: "lead@y.com", Name: "Lead"},
		Subject: "New enquiry",
		Text:    "hello",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.MessageID != "msg-1" || res.StatusCode != http.StatusAccepted {
		t.Fatalf("result=%+v", res)
	}
	if got.From.Email != "site@x.com" {
		t.Fatalf("from=%q", got.From.Email)
	}
	if got.ReplyTo == nil || got.ReplyTo.Email != "lead@y.com" {
		t.Fatalf("reply_to=%+v", got.ReplyTo)
	}
	if len(got.Content) != 1 || got.Content[0].Type != "text/plain" {
		t.Fatalf("content=%+v", got.Content)
	}
}

func TestSend_DoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	cl := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		calls++
		return &http.Response{
			StatusCode: http.StatusBadRequest,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader(`{"errors":[{"message":"bad from"}]}`)),
		}, nil
	}, 3)

	_, err := cl.Send(context.Background(), SendEmailRequest{
		To: []EmailAddress{{Email: "sales@x.com"}}, Subject: "s", Text: "t",
	})
	if err == nil || !strings.Contains(err.Error(), "bad from") {
		t.Fatalf("err=%v", err)
	}
	if calls != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestSend_RequiresContent(t *testing.T) {
	cl := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request")
		return nil, nil
	}, 0)
	if _, err := cl.Send(context.Background(), SendEmailRequest{To: []EmailAddress{{Email: "a@b.c"}}, Subject: "s"}); err == nil {
		t.Fatalf("expected error")
	}
}
