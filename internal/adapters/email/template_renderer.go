package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"eventticketing/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Each notification ships three files under templates/: <name>_subject.txt,
// <name>.html and <name>.txt. They are parsed once when the renderer is built.
var (
	htmlTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
)

// payloadChecks maps each notification to a check on the data it is rendered with.
var payloadChecks = map[string]func(any) bool{
	domain.TemplateTicketConfirmation: func(data any) bool {
		_, ok := data.(*domain.TicketConfirmationEmailData)
		return ok
	},
	domain.TemplateRegistrationConfirmation: func(data any) bool {
		_, ok := data.(*domain.RegistrationConfirmationEmailData)
		return ok
	},
}

type templateRenderer struct{}

// NewTemplateRenderer returns the renderer for ticket and registration
// confirmations. Other template names are rejected.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{}
}

// Render produces the subject line, HTML body and plain-text body of a notification.
// The ticket confirmation takes *domain.TicketConfirmationEmailData and the
// registration confirmation *domain.RegistrationConfirmationEmailData.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	check, ok := payloadChecks[templateName]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", templateName)
	}
	if !check(data) {
		return "", "", "", fmt.Errorf("email template %q: unexpected data %T", templateName, data)
	}

	subject, err = execute(textTemplates, templateName+"_subject.txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = execute(htmlTemplates, templateName+".html", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = execute(textTemplates, templateName+".txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(set executor, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
