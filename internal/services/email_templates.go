package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/you/coursefinder/domain"
)

const (
	verificationSubject = "Verify your email"
	resetSubject        = "Password Reset Code"
)

var (
	verificationTemplate = template.Must(template.New("verification").Parse(`<h2>Email Verification</h2>
<p>Your verification code is:</p>
<h1 style="font-size:40px; letter-spacing:8px">{{.Code}}</h1>
<p>This code expires in {{.Minutes}} minutes.</p>
`))

	resetTemplate = template.Must(template.New("reset").Parse(`<h2>Reset Password</h2>
<p>Your reset code is:</p>
<h1 style="font-size:40px; letter-spacing:8px">{{.Code}}</h1>
<p>This code expires in {{.Minutes}} minutes.</p>
`))
)

type codeEmail struct {
	Code    string
	Minutes int
}

func renderCodeEmail(tpl *template.Template, code string) (string, error) {
	var buf bytes.Buffer
	data := codeEmail{Code: code, Minutes: int(domain.CodeTTL.Minutes())}
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", tpl.Name(), err)
	}
	return buf.String(), nil
}
