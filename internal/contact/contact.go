// Package contact handles website enquiries: it validates the form, mails it
// to the team and records it as a CRM lead.
package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/blockpage/internal/crm"
	"github.com/yungbote/blockpage/internal/platform/logger"
	"github.com/yungbote/blockpage/internal/platform/sendgrid"
)

// ErrDeliveryFailed means every configured channel failed.
var ErrDeliveryFailed = errors.New("contact: delivery failed")

type Submission struct {
	Name    string `json:"name" form:"name" validate:"required,max=200"`
	Email   string `json:"email" form:"email" validate:"required,email,max=320"`
	Company string `json:"company" form:"company" validate:"max=200"`
	Phone   string `json:"phone" form:"phone" validate:"omitempty,max=40"`
	Message string `json:"message" form:"message" validate:"required,min=2,max=5000"`
	Source  string `json:"source" form:"source" validate:"max=200"`

	// Website is a honeypot. Real visitors never see it.
	Website string `json:"website" form:"website"`
}

// FieldError is one failed validation rule, reported back to the form.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+":"+f.Rule)
	}
	return "contact: invalid submission (" + strings.Join(parts, ", ") + ")"
}

type Result struct {
	Emailed bool   `json:"emailed"`
	LeadID  string `json:"leadId,omitempty"`
	Spam    bool   `json:"-"`
}

type Options struct {
	Mailer  sendgrid.Client
	CRM     crm.Client
	To      []string
	Subject string
	Log     *logger.Logger
}

type Service struct {
	mailer   sendgrid.Client
	crm      crm.Client
	to       []sendgrid.EmailAddress
	subject  string
	log      *logger.Logger
	validate *validator.Validate
}

func New(opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	subject := strings.TrimSpace(opts.Subject)
	if subject == "" {
		subject = "New website enquiry"
	}
	s := &Service{
		mailer:   opts.Mailer,
		crm:      opts.CRM,
		subject:  subject,
		log:      log.With("service", "ContactService"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, addr := range opts.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			s.to = append(s.to, sendgrid.EmailAddress{Email: addr})
		}
	}
	if len(s.to) == 0 {
		s.mailer = nil
	}
	return s
}

func (s *Service) Validate(sub *Submission) error {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Company = strings.TrimSpace(sub.Company)
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.Message = strings.TrimSpace(sub.Message)
	sub.Source = strings.TrimSpace(sub.Source)

	err := s.validate.Struct(sub)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: jsonName(fe.Field()), Rule: fe.Tag()})
	}
	return out
}

// Submit validates and delivers. Email and CRM run concurrently and
// independently; the submission succeeds if either succeeds or neither is
// configured. Honeypot hits are accepted and dropped.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if err := s.Validate(&sub); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sub.Website) != "" {
		s.log.Info("Contact honeypot tripped", "source", sub.Source)
		return &Result{Spam: true}, nil
	}

	var (
		res      Result
		mu       sync.Mutex
		failures error
		tried    int
		g        errgroup.Group
	)
	if s.mailer != nil {
		tried++
		g.Go(func() error {
			if _, err := s.mailer.Send(ctx, s.email(sub)); err != nil {
				mu.Lock()
				failures = multierr.Append(failures, fmt.Errorf("email: %w", err))
				mu.Unlock()
				return nil
			}
			mu.Lock()
			res.Emailed = true
			mu.Unlock()
			return nil
		})
	}
	if s.crm != nil {
		tried++
		g.Go(func() error {
			first, last := crm.SplitName(sub.Name)
			id, err := s.crm.CreateLead(ctx, crm.Lead{
				FirstName:   first,
				LastName:    last,
				Email:       sub.Email,
				Company:     sub.Company,
				Phone:       sub.Phone,
				Description: sub.Message,
				Source:      sub.Source,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = multierr.Append(failures, fmt.Errorf("crm: %w", err))
				return nil
			}
			res.LeadID = id
			return nil
		})
	}
	_ = g.Wait()

	if tried == 0 {
		s.log.Warn("Contact submission accepted with no delivery channel configured", "source", sub.Source)
		return &res, nil
	}
	if failures != nil {
		s.log.Error("Contact delivery failed", "failed", len(multierr.Errors(failures)), "channels", tried, "error", failures.Error())
		if len(multierr.Errors(failures)) == tried {
			return nil, fmt.Errorf("%w: %w", ErrDeliveryFailed, failures)
		}
	}
	s.log.Info("Contact submission delivered", "emailed", res.Emailed, "lead", res.LeadID != "", "source", sub.Source)
	return &res, nil
}

func (s *Service) email(sub Submission) sendgrid.SendEmailRequest {
	var text strings.Builder
	fmt.Fprintf(&text, "Name: %s\nEmail: %s\n", sub.Name, sub.Email)
	if sub.Company != "" {
		fmt.Fprintf(&text, "Company: %s\n", sub.Company)
	}
	if sub.Phone != "" {
		fmt.Fprintf(&text, "Phone: %s\n", sub.Phone)
	}
	if sub.Source != "" {
		fmt.Fprintf(&text, "Page: %s\n", sub.Source)
	}
	text.WriteString("\n" + sub.Message + "\n")

	body := "<p>" + strings.ReplaceAll(html.EscapeString(text.String()), "\n", "<br>") + "</p>"
	return sendgrid.SendEmailRequest{
		ReplyTo:    &sendgrid.EmailAddress{Email: sub.Email, Name: sub.Name},
		To:         s.to,
		Subject:    s.subject + ": " + sub.Name,
		Text:       text.String(),
		HTML:       body,
		Categories: []string{"contact-form"},
	}
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
