package notification

import (
	"bytes"
	"html/template"
	"strconv"
	"time"

	"identity/internal/domain/service"
	"identity/internal/errors"
)

type emailContent struct {
	Subject string
	HTML    string
}

type templateData struct {
	Product string
	Name    string
	Link    string
	Expires string
}

const layout = `{{define "layout"}}<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Product}}</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
{{template "content" .}}
<p style="color: #666; font-size: 12px;">This is an automated message from {{.Product}}. Please do not reply.</p>
</body>
</html>{{end}}`

//nolint:gochecknoglobals
var templates = map[service.NotificationKind]struct {
	subject string
	body    *template.Template
}{
	service.NotificationVerificationEmail: {
		subject: "Verify your email address",
		body: mustParse(`{{define "content"}}<h2>Hi {{.Name}},</h2>
<p>Please confirm your email address by opening the link below.</p>
<p><a href="{{.Link}}" style="background: #4f46e5; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Verify email</a></p>
<p>Or copy this URL into your browser: {{.Link}}</p>
<p>This link expires in {{.Expires}}. If you did not create an account, ignore this email.</p>{{end}}`),
	},
	service.NotificationWelcomeEmail: {
		subject: "Welcome!",
		body: mustParse(`{{define "content"}}<h2>Welcome, {{.Name}}!</h2>
<p>Your email address is verified and your account is ready to use.</p>{{end}}`),
	},
	service.NotificationPasswordResetEmail: {
		subject: "Reset your password",
		body: mustParse(`{{define "content"}}<h2>Hi {{.Name}},</h2>
<p>We received a request to reset your password. Open the link below to choose a new one.</p>
<p><a href="{{.Link}}" style="background: #dc2626; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Reset password</a></p>
<p>Or copy this URL into your browser: {{.Link}}</p>
<p>This link expires in {{.Expires}} and can be used once. If you did not ask for a reset, your password stays unchanged.</p>{{end}}`),
	},
}

func mustParse(content string) *template.Template {
	return template.Must(template.Must(template.New("email").Parse(layout)).Parse(content))
}

// render builds the subject and HTML body for a notification.
func render(product string, n service.Notification, ttl time.Duration) (*emailContent, error) {
	tmpl, ok := templates[n.Kind]
	if !ok {
		return nil, errors.Errorf("unknown notification kind: %s", n.Kind)
	}

	name := n.Name
	if name == "" {
		name = n.To
	}

	var buf bytes.Buffer
	if err := tmpl.body.ExecuteTemplate(&buf, "layout", templateData{
		Product: product,
		Name:    name,
		Link:    n.Link,
		Expires: humanizeDuration(ttl),
	}); err != nil {
		return nil, errors.Wrapf(err, "render %s", n.Kind)
	}

	return &emailContent{
		Subject: tmpl.subject + " - " + product,
		HTML:    buf.String(),
	}, nil
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "a short time"
	case d%(24*time.Hour) == 0 && d >= 24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d.Round(time.Minute)/time.Minute), "minute")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}

	return strconv.Itoa(n) + " " + unit + "s"
}
