package contact

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/yungbote/blockpage/internal/crm"
	"github.com/yungbote/blockpage/internal/platform/sendgrid"
)

type fakeMailer struct {
	calls int32
	err   error
	last  sendgrid.SendEmailRequest
}

func (f *fakeMailer) Send(_ context.Context, req sendgrid.SendEmailRequest) (*sendgrid.SendEmailResult, error) {
	atomic.AddInt32(&f.calls, 1)
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &sendgrid.SendEmailResult{StatusCode: 202}, nil
}

type fakeCRM struct {
	err  error
	last crm.Lead
}

func (f *fakeCRM) CreateLead(_ context.Context, lead crm.Lead) (string, error) {
	f.last = lead
	if f.err != nil {
		return "", f.err
	}
	return "L-9", nil
}

func validSubmission() Submission {
	return Submission{Name: " Ada Lovelace ", Email: "ada@example.com", Message: "We need a new site.", Source: "/contact"}
}

func TestSubmit_DeliversToBothChannels(t *testing.T) {
	m, c := &fakeMailer{}, &fakeCRM{}
	s := New(Options{Mailer: m, CRM: c, To: []string{"team@example.com"}})

	res, err := s.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.Emailed || res.LeadID != "L-9" {
		t.Fatalf("result=%+v", res)
	}
	if c.last.FirstName != "Ada" || c.last.LastName != "Lovelace" {
		t.Fatalf("lead=%+v", c.last)
	}
	if m.last.ReplyTo == nil || m.last.ReplyTo.Email != "ada@example.com" {
		t.Fatalf("reply-to=%+v", m.last.ReplyTo)
	}
	if !strings.Contains(m.last.Subject, "Ada Lovelace") {
		t.Fatalf("subject=%q", m.last.Subject)
	}
}

func TestSubmit_OneChannelFailingStillSucceeds(t *testing.T) {
	m := &fakeMailer{err: errors.New("sendgrid down")}
	s := New(Options{Mailer: m, CRM: &fakeCRM{}, To: []string{"team@example.com"}})
	res, err := s.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Emailed || res.LeadID == "" {
		t.Fatalf("result=%+v", res)
	}
}

func TestSubmit_AllChannelsFailing(t *testing.T) {
	s := New(Options{
		Mailer: &fakeMailer{err: errors.New("down")},
		CRM:    &fakeCRM{err: errors.New("down")},
		To:     []string{"team@example.com"},
	})
	_, err := s.Submit(context.Background(), validSubmission())
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
}

func TestSubmit_NoChannelsConfiguredIsAccepted(t *testing.T) {
	m := &fakeMailer{}
	s := New(Options{Mailer: m})
	if _, err := s.Submit(context.Background(), validSubmission()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if atomic.LoadInt32(&m.calls) != 0 {
		t.Fatalf("mailer without recipients must not be called")
	}
}

func TestSubmit_ValidationErrorsNameFields(t *testing.T) {
	s := New(Options{})
	_, err := s.Submit(context.Background(), Submission{Email: "not-an-email"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	got := map[string]string{}
	for _, f := range ve.Fields {
		got[f.Field] = f.Rule
	}
	if got["name"] != "required" || got["email"] != "email" || got["message"] != "required" {
		t.Fatalf("fields=%v", got)
	}
}

func TestSubmit_HoneypotIsDropped(t *testing.T) {
	m := &fakeMailer{}
	s := New(Options{Mailer: m, To: []string{"team@example.com"}})
	sub := validSubmission()
	sub.Website = "http://spam.example"
	res, err := s.Submit(context.Background(), sub)
	if err != nil || !res.Spam {
		t.Fatalf("res=%+v err=%v", res, err)
	}
	if atomic.LoadInt32(&m.calls) != 0 {
		t.Fatalf("spam should not be mailed")
	}
}
