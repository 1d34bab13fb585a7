package mailer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// markdown renders trusted templates only; raw HTML in the source is omitted.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ConfirmationMessage builds the email sent after registration.
func ConfirmationMessage(to, username, link string) (Message, error) {
	body, err := RenderMarkdown(fmt.Sprintf(
		"# Welcome to Techfesia, %s\n\nPlease confirm your email address:\n\n[Confirm my email](%s)\n\nIf you did not create an account you can ignore this message.",
		username, link,
	))
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{to},
		Subject: "Confirm your Techfesia account",
		HTML:    body,
	}, nil
}
