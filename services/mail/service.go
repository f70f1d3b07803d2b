package mail

import (
	"bytes"
	"fmt"
	htmlTemplate "html/template"
	"path/filepath"
	textTemplate "text/template"

	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/services/logging"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Service struct {
	config        *config.MailConfig
	client        *mail.Client
	htmlTemplates *htmlTemplate.Template
	textTemplates *textTemplate.Template
	logger        *logging.Service
}

func NewService(cfg *config.MailConfig, logger *logging.Service) (*Service, error) {
	service := &Service{
		config: cfg,
		logger: logger,
	}

	if cfg.Host == "" {
		logger.Warn("mail host not configured, outgoing email disabled")
		return service, nil
	}

	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("MAIL_FROM_ADDRESS is required")
	}

	clientOpts := []mail.Option{
		mail.WithPort(cfg.Port),
	}

	switch cfg.Encryption {
	case "ssl":
		clientOpts = append(clientOpts, mail.WithSSL())
	case "none":
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.NoTLS))
	default:
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}

	if cfg.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
		)
	}
	if cfg.Password != "" {
		clientOpts = append(clientOpts, mail.WithPassword(cfg.Password))
	}

	client, err := mail.NewClient(cfg.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	service.client = client

	if err := service.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load mail templates: %w", err)
	}

	logger.Info("mail service initialized",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("from_address", cfg.FromAddress))
	return service, nil
}

func (s *Service) loadTemplates() error {
	if s.config.TemplatesDir == "" {
		return nil
	}

	htmlPattern := filepath.Join(s.config.TemplatesDir, "*.html")
	textPattern := filepath.Join(s.config.TemplatesDir, "*.txt")

	var err error
	s.htmlTemplates, err = htmlTemplate.ParseGlob(htmlPattern)
	if err != nil && err.Error() != "template: pattern matches no files: "+htmlPattern {
		return fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	s.textTemplates, err = textTemplate.ParseGlob(textPattern)
	if err != nil && err.Error() != "template: pattern matches no files: "+textPattern {
		return fmt.Errorf("failed to parse text templates: %w", err)
	}

	return nil
}

// Enabled reports whether a mail host is configured.
func (s *Service) Enabled() bool {
	return s.client != nil
}

func (s *Service) newMessage() (*mail.Msg, error) {
	message := mail.NewMsg()

	fromAddr := s.config.FromAddress
	if s.config.FromName != "" {
		fromAddr = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress)
	}

	if err := message.From(fromAddr); err != nil {
		return nil, fmt.Errorf("failed to set FROM address: %w", err)
	}

	return message, nil
}

// SendTemplate renders templateName (html and txt variants, whichever exist)
// and delivers the message.
func (s *Service) SendTemplate(templateName string, to []string, subject string, data map[string]any) error {
	if !s.Enabled() {
		s.logger.Warn("mail disabled, dropping message",
			zap.String("template", templateName),
			zap.Strings("recipients", to))
		return fmt.Errorf("mail service is disabled")
	}

	message, err := s.newMessage()
	if err != nil {
		return err
	}

	if err := message.To(to...); err != nil {
		return fmt.Errorf("failed to set TO addresses: %w", err)
	}
	message.Subject(subject)

	if err := s.renderTemplate(templateName, data, message); err != nil {
		return err
	}

	if err := s.client.DialAndSend(message); err != nil {
		s.logger.Error("failed to send email",
			zap.Error(err),
			zap.String("template", templateName))
		return err
	}

	s.logger.Info("email sent",
		zap.String("template", templateName),
		zap.Strings("recipients", to))
	return nil
}

func (s *Service) renderTemplate(templateName string, data map[string]any, message *mail.Msg) error {
	var hasBody bool

	if s.htmlTemplates != nil {
		if tmpl := s.htmlTemplates.Lookup(templateName + ".html"); tmpl != nil {
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				return fmt.Errorf("failed to execute HTML template: %w", err)
			}
			message.SetBodyString(mail.TypeTextHTML, buf.String())
			hasBody = true
		}
	}

	if s.textTemplates != nil {
		if tmpl := s.textTemplates.Lookup(templateName + ".txt"); tmpl != nil {
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				return fmt.Errorf("failed to execute text template: %w", err)
			}
			if hasBody {
				message.AddAlternativeString(mail.TypeTextPlain, buf.String())
			} else {
				message.SetBodyString(mail.TypeTextPlain, buf.String())
			}
			hasBody = true
		}
	}

	if !hasBody {
		return fmt.Errorf("template %q not found", templateName)
	}

	return nil
}
