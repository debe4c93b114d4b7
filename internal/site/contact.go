package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"
)

// Relay defaults for the site's EmailJS account.
const (
	DefaultEndpoint   = "https://api.emailjs.com/api/v1.0/email/send"
	DefaultServiceID  = "service_ed0f0iu"
	DefaultTemplateID = "template_9pbdjok"
	DefaultPublicKey  = "WEW5-nE0i8W1voS3K"
)

type ContactForm struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Subject   string `yaml:"subject"`
	Message   string `yaml:"message"`
}

// Validate requires a first name, an email address and a message.
func (f ContactForm) Validate() error {
	for _, field := range []struct{ name, value string }{
		{"first name", f.FirstName},
		{"email", f.Email},
		{"message", f.Message},
	} {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s: %w", field.name, ErrMissingField)
		}
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(f.Email))
	if err != nil || addr.Name != "" {
		return fmt.Errorf("%q: %w", f.Email, ErrInvalidEmail)
	}
	return nil
}

// TemplateParams are the variables the email template expects.
type TemplateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

func (f ContactForm) TemplateParams() TemplateParams {
	return TemplateParams{
		FromName:  f.FirstName + " " + f.LastName,
		FromEmail: f.Email,
		Subject:   f.Subject,
		Message:   f.Message,
	}
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams TemplateParams `json:"template_params"`
}

// Relay sends contact messages through the EmailJS REST API.
type Relay struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	Client     *http.Client
}

func NewRelay() *Relay {
	return &Relay{
		Endpoint:   DefaultEndpoint,
		ServiceID:  DefaultServiceID,
		TemplateID: DefaultTemplateID,
		PublicKey:  DefaultPublicKey,
		Client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Send validates f and posts it. Any non-2xx response is a *RelayError.
func (r *Relay) Send(ctx context.Context, f ContactForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(sendRequest{
		ServiceID:      r.ServiceID,
		TemplateID:     r.TemplateID,
		UserID:         r.PublicKey,
		TemplateParams: f.TemplateParams(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RelayError{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	return nil
}

type ContactStatus int

const (
	Idle ContactStatus = iota
	Sending
	Sent
	Failed
)

func (s ContactStatus) String() string {
	switch s {
	case Sending:
		return "sending"
	case Sent:
		return "sent"
	case Failed:
		return "failed"
	}
	return "idle"
}

// Sender is the contact form's submit flow: it reports Sending while the
// relay call is in flight, then Sent or Failed.
type Sender struct {
	Relay  *Relay
	Status ContactStatus
	Err    error
	// OnStatus, when set, sees every transition.
	OnStatus func(ContactStatus)
}

func NewSender(r *Relay) *Sender {
	return &Sender{Relay: r}
}

func (s *Sender) set(st ContactStatus) {
	s.Status = st
	if s.OnStatus != nil {
		s.OnStatus(st)
	}
}

// Submit sends f. Validation failures leave the status untouched so the
// user can correct the form.
func (s *Sender) Submit(ctx context.Context, f ContactForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	s.Err = nil
	s.set(Sending)
	if err := s.Relay.Send(ctx, f); err != nil {
		s.Err = err
		log.Printf("[Contact] relay failed: %v", err)
		s.set(Failed)
		return err
	}
	s.set(Sent)
	return nil
}

// ButtonLabel is the submit button text for the current status.
func (s *Sender) ButtonLabel(original string) string {
	if s.Status == Sending {
		return "Sending..."
	}
	return original
}
