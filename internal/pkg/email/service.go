package email

import (
	"bytes"
	"context"
	"html/template"
	"sync"

	"github.com/rs/zerolog/log"
)

// Service renders templates and sends emails off the request path
type Service struct {
	sender       Sender
	templates    map[string]*template.Template
	baseTemplate *template.Template
	queue        chan *QueuedEmail
	wg           sync.WaitGroup
}

// QueuedEmail represents an email in the send queue
type QueuedEmail struct {
	To           string
	ToName       string
	Subject      string
	TemplateName string
	Data         interface{}
}

// NewService creates email service and starts its worker
func NewService(sender Sender) *Service {
	s := &Service{
		sender:       sender,
		templates:    make(map[string]*template.Template),
		baseTemplate: template.Must(template.New("base").Parse(BaseTemplate)),
		queue:        make(chan *QueuedEmail, 100),
	}

	for name, content := range map[string]string{
		TemplateEnquiryReceived: EnquiryReceivedTemplate,
		TemplateEnquiryAlert:    EnquiryAlertTemplate,
	} {
		s.templates[name] = template.Must(template.New(name).Parse(content))
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

func (s *Service) worker() {
	defer s.wg.Done()

	for email := range s.queue {
		if err := s.send(context.Background(), email); err != nil {
			log.Error().Err(err).
				Str("to", email.To).
				Str("template", email.TemplateName).
				Msg("Failed to send email")
		}
	}
}

func (s *Service) send(ctx context.Context, email *QueuedEmail) error {
	tmpl, ok := s.templates[email.TemplateName]
	if !ok {
		log.Warn().Str("template", email.TemplateName).Msg("Template not found")
		return nil
	}

	var contentBuf bytes.Buffer
	if err := tmpl.Execute(&contentBuf, email.Data); err != nil {
		return err
	}

	var htmlBuf bytes.Buffer
	if err := s.baseTemplate.Execute(&htmlBuf, map[string]interface{}{
		"Content": template.HTML(contentBuf.String()),
	}); err != nil {
		return err
	}

	return s.sender.Send(ctx, &Message{
		To:          email.To,
		ToName:      email.ToName,
		Subject:     email.Subject,
		HTMLContent: htmlBuf.String(),
	})
}

// Queue adds an email to the async send queue. Drops it when the queue is full.
func (s *Service) Queue(to, toName, templateName, subject string, data interface{}) {
	select {
	case s.queue <- &QueuedEmail{
		To:           to,
		ToName:       toName,
		Subject:      subject,
		TemplateName: templateName,
		Data:         data,
	}:
	default:
		log.Warn().Str("to", to).Msg("Email queue full, dropping email")
	}
}

// Close drains the queue and stops the worker
func (s *Service) Close() {
	close(s.queue)
	s.wg.Wait()
}

// EnquiryEmail is the data rendered into enquiry emails
type EnquiryEmail struct {
	ContactName  string
	EnquiryType  string
	CareType     string
	PropertyName string
	ResidentName string
	Reference    string
}

// SendEnquiryReceived acknowledges an enquiry to the person who submitted it
func (s *Service) SendEnquiryReceived(to string, data EnquiryEmail) {
	s.Queue(to, data.ContactName, TemplateEnquiryReceived, "Thank you for your enquiry", data)
}

// SendEnquiryAlert tells the admissions inbox about a new enquiry
func (s *Service) SendEnquiryAlert(to string, data EnquiryEmail) {
	s.Queue(to, "Admissions", TemplateEnquiryAlert, "New enquiry: "+data.ContactName, data)
}
