package services

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"estimator/models"

	"golang.org/x/net/html"
)

// convertHTMLToText converts HTML content to plain text for email sending
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		// If parsing fails, return the original content
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			case "table", "tr":
				text.WriteString("\n")
			case "td", "th":
				text.WriteString(" | ")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}

	extractText(doc)

	result := text.String()
	result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	return strings.TrimSpace(result)
}

// EmailService sends quote notifications to clients over SMTP.
type EmailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewEmailService reads SMTP settings from the environment.
func NewEmailService() *EmailService {
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

// buildQuoteEmailHTML renders the locked quote as a simple HTML document.
func buildQuoteEmailHTML(quote models.Quote, versionNumber int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>Estimate %s (Rev %d)</h2>", quote.BaseNumber, versionNumber))
	b.WriteString(fmt.Sprintf("<p>%s<br>%s</p>", quote.JobName, quote.JobAddress))
	b.WriteString("<table><tr><th>Description</th><th>Qty</th><th>Unit</th><th>Price</th><th>Total</th></tr>")
	for _, li := range quote.LineItems {
		if li.IsExcluded {
			continue
		}
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%.2f</td><td>%s</td><td>%.2f</td><td>%.2f</td></tr>",
			li.Description, li.Quantity, li.Unit, li.UnitPrice, li.Total()))
	}
	b.WriteString("</table>")
	b.WriteString(fmt.Sprintf("<p><b>Total: $%.2f</b></p>", quote.Total()))
	if quote.Notes != "" {
		b.WriteString(fmt.Sprintf("<p>%s</p>", quote.Notes))
	}
	return b.String()
}

// SendQuoteEmail emails a locked quote to its client. The HTML body is
// downgraded to plain text for the message body.
func (es *EmailService) SendQuoteEmail(quote models.Quote, versionNumber int) error {
	if quote.ClientEmail == "" {
		return fmt.Errorf("quote %s has no client email", quote.ID)
	}
	if es.host == "" || es.from == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	subject := fmt.Sprintf("Estimate %s - %s", quote.BaseNumber, quote.JobName)
	body := convertHTMLToText(buildQuoteEmailHTML(quote, versionNumber))

	headers := []string{
		"From: " + es.from,
		"To: " + quote.ClientEmail,
		"Subject: " + subject,
		"",
		body,
	}
	msg := []byte(strings.Join(headers, "\r\n") + "\r\n")

	auth := smtp.PlainAuth("", es.username, es.password, es.host)
	addr := es.host + ":" + es.port

	if err := smtp.SendMail(addr, auth, es.from, []string{quote.ClientEmail}, msg); err != nil {
		return fmt.Errorf("failed to send quote email: %v", err)
	}
	return nil
}
