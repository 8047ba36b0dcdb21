package mailer

import (
	"bytes"
	"fmt"
	"text/template"
)

var deathNotificationTmpl = template.Must(template.New("death").Parse(
	`Dear {{.ContactName}},

We are deeply sorry to inform you of the passing of {{.DeceasedName}}.

{{.DeceasedName}} named you a trusted contact for their digital legacy.
You can view what they chose to share with you here:

    {{.AccessLink}}

This link is personal to you. Please do not forward it.

With sympathy,
The Afterly Team
`))

var invitationTmpl = template.Must(template.New("invitation").Parse(
	`Hello{{if .Name}} {{.Name}}{{end}},

Your insurance provider has arranged an Afterly account for you, so you can
plan what happens to your digital life. Get started here:

    {{.SignUpURL}}

The Afterly Team
`))

// DeathNotification renders the email sent to a trusted contact after the
// death trigger fires.
func DeathNotification(to, contactName, deceasedName, accessLink string) (Message, error) {
	var buf bytes.Buffer
	err := deathNotificationTmpl.Execute(&buf, struct {
		ContactName  string
		DeceasedName string
		AccessLink   string
	}{contactName, deceasedName, accessLink})
	if err != nil {
		return Message{}, fmt.Errorf("render death notification: %w", err)
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("We're so sorry for the loss of %s", deceasedName),
		Body:    buf.String(),
	}, nil
}

// Invitation renders the signup email sent to insurance-fed new users.
func Invitation(to, name, signUpURL string) (Message, error) {
	var buf bytes.Buffer
	err := invitationTmpl.Execute(&buf, struct {
		Name      string
		SignUpURL string
	}{name, signUpURL})
	if err != nil {
		return Message{}, fmt.Errorf("render invitation: %w", err)
	}
	return Message{
		To:      to,
		Subject: "Welcome to Afterly - Let's Get Started",
		Body:    buf.String(),
	}, nil
}
