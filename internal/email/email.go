// Package email sends transactional notifications over SMTP.
package email

import (
	"fmt"
	"html"
	"mime"
	"mime/quotedprintable"
	"net/smtp"
	"regexp"
	"strings"
	"time"

	"github.com/tutorhub/tutorhub/internal/config"
)

var emailRegex = regexp.MustCompile(`^[^:\p{Cc} ]+@[^:\p{Cc} ]+\.[^:\p{Cc} ]+$`)

func IsEmail(address string) bool {
	return emailRegex.MatchString(address)
}

// Sender delivers notification mail. Implementations should be treated as
// best-effort by callers; a lost notification never fails the request that
// triggered it.
type Sender interface {
	SendConnectionRequest(toAddress, toName, fromName string) error
}

// SMTPSender sends through a plain-auth SMTP relay.
type SMTPSender struct {
	conf config.Config
}

func NewSMTPSender(conf config.Config) *SMTPSender {
	return &SMTPSender{conf: conf}
}

func (s *SMTPSender) SendConnectionRequest(toAddress, toName, fromName string) error {
	body := connectionRequestBody(toName, fromName, s.conf.PublicURL)
	return s.sendMail(toAddress, toName, "New connection request", body)
}

// Names come from user profiles; escape them before they land in HTML.
func connectionRequestBody(toName, fromName, publicURL string) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>%s wants to connect with you on TutorHub.</p><p>Visit %s to respond to the request.</p>",
		html.EscapeString(toName), html.EscapeString(fromName), publicURL,
	)
}

func (s *SMTPSender) sendMail(toAddress, toName, subject, contentHTML string) error {
	contents := prepMailContents(
		makeHeaderAddress(toAddress, toName),
		makeHeaderAddress(s.conf.SMTPFrom, "TutorHub"),
		subject,
		contentHTML,
	)
	return smtp.SendMail(
		fmt.Sprintf("%s:%d", s.conf.SMTPHost, s.conf.SMTPPort),
		smtp.PlainAuth("", s.conf.SMTPUser, s.conf.SMTPPass, s.conf.SMTPHost),
		s.conf.SMTPFrom,
		[]string{toAddress},
		contents,
	)
}

func makeHeaderAddress(email, fullname string) string {
	if fullname == "" {
		return email
	}

	encoded := mime.BEncoding.Encode("utf-8", fullname)
	if encoded == fullname {
		encoded = strings.ReplaceAll(encoded, `"`, `\"`)
		encoded = fmt.Sprintf("\"%s\"", encoded)
	}
	return fmt.Sprintf("%s <%s>", encoded, email)
}

func prepMailContents(toLine, fromLine, subject, contentHTML string) []byte {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("To: %s\r\n", toLine))
	builder.WriteString(fmt.Sprintf("From: %s\r\n", fromLine))
	builder.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z)))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject)))
	builder.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	builder.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	builder.WriteString("\r\n")
	writer := quotedprintable.NewWriter(&builder)
	writer.Write([]byte(contentHTML))
	writer.Close()
	builder.WriteString("\r\n")

	return []byte(builder.String())
}
