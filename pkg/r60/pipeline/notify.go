package pipeline

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/r60proc/r60proc-go/pkg/r60/models"
)

// Templates hold the per-outcome notification subject and body templates.
// Bodies are text/template strings over NotifyData.
type Templates struct {
	SuccessSubject   string
	SuccessBody      string
	DuplicateSubject string
	DuplicateBody    string
	ErrorSubject     string
	ErrorBody        string
}

// NotifyData is the parameter set available to notification templates.
type NotifyData struct {
	Number    string
	Date      string
	Requester string
	Variant   string
	ItemCount int
	Link      string
	Error     string
	FileName  string
}

// DefaultTemplates returns the built-in notification templates.
func DefaultTemplates() Templates {
	return Templates{
		SuccessSubject: "Formulario R-60 procesado - {{.Number}}",
		SuccessBody: strings.TrimSpace(`
El formulario R-60 ha sido procesado correctamente.

  Numero:      {{.Number}}
  Fecha:       {{.Date}}
  Solicitante: {{.Requester}}
  Tipo:        {{.Variant}}
  Items:       {{.ItemCount}}
  Archivo:     {{.Link}}

Los datos fueron registrados y el archivo original fue archivado.
Este es un mensaje automatico, no responder.`),
		DuplicateSubject: "Formulario R-60 duplicado - {{.Number}}",
		DuplicateBody: strings.TrimSpace(`
El formulario R-60 ya habia sido procesado anteriormente.

  Numero:      {{.Number}}
  Solicitante: {{.Requester}}

No se realizaron cambios. Este es un mensaje automatico, no responder.`),
		ErrorSubject: "Error al procesar formulario R-60",
		ErrorBody: strings.TrimSpace(`
Se produjo un error al procesar el formulario R-60.

  Error:   {{.Error}}
  Archivo: {{.FileName}}

Revisa el formulario y vuelve a enviarlo. Este es un mensaje automatico,
no responder.`),
	}
}

func (t Templates) withDefaults() Templates {
	def := DefaultTemplates()
	if t.SuccessSubject == "" {
		t.SuccessSubject = def.SuccessSubject
	}
	if t.SuccessBody == "" {
		t.SuccessBody = def.SuccessBody
	}
	if t.DuplicateSubject == "" {
		t.DuplicateSubject = def.DuplicateSubject
	}
	if t.DuplicateBody == "" {
		t.DuplicateBody = def.DuplicateBody
	}
	if t.ErrorSubject == "" {
		t.ErrorSubject = def.ErrorSubject
	}
	if t.ErrorBody == "" {
		t.ErrorBody = def.ErrorBody
	}
	return t
}

// render picks the template pair for the outcome and fills it in.
// sub may be nil when extraction never produced a submission.
func (t Templates) render(out models.Outcome, sub *models.Submission) (subject, body string, err error) {
	data := NotifyData{
		Number:   out.Number,
		Error:    out.Error,
		FileName: out.FileName,
	}
	if sub != nil {
		data.Date = sub.Date()
		data.Requester = sub.Requester()
		data.Variant = string(sub.Variant)
		data.ItemCount = len(sub.Items)
		data.Link = sub.ArchiveLink
	}

	var subjTpl, bodyTpl string
	switch out.Status {
	case models.OutcomeProcessed:
		subjTpl, bodyTpl = t.SuccessSubject, t.SuccessBody
	case models.OutcomeDuplicate:
		subjTpl, bodyTpl = t.DuplicateSubject, t.DuplicateBody
	default:
		subjTpl, bodyTpl = t.ErrorSubject, t.ErrorBody
	}

	subject, err = renderTemplate("subject", subjTpl, data)
	if err != nil {
		return "", "", err
	}
	body, err = renderTemplate("body", bodyTpl, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func renderTemplate(name, text string, data NotifyData) (string, error) {
	tpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", name, err)
	}
	var b strings.Builder
	if err := tpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return b.String(), nil
}
