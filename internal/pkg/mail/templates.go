package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"
)

var contactNotifyTpl = template.Must(template.New("contact").Funcs(template.FuncMap{
	"year": func() int { return time.Now().Year() },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="background-color:#fff;margin:0 auto;font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Helvetica Neue,Arial,sans-serif;padding:.5rem">
  <table align="center" width="100%" role="presentation" cellspacing="0" cellpadding="0" border="0" style="max-width:100%;border:1px solid rgb(217,119,6);border-radius:.25rem;margin:40px auto;padding:20px;width:550px">
    <tbody>
      <tr><td>
        <h1 style="color:#000;font-size:18px;font-weight:400;text-align:center;margin:30px 0">New message from <strong>{{.Name}}</strong></h1>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#000"><strong>{{.Subject}}</strong></p>
        <table align="center" width="100%" role="presentation" border="0" cellpadding="0" cellspacing="0" style="background-color:rgb(243,244,246);border-radius:.75rem;padding:0 1rem">
          <tbody><tr><td><p style="font-size:13px;line-height:24px;margin:16px 0;color:rgb(51,51,51);white-space:pre-wrap">{{.Body}}</p></td></tr></tbody>
        </table>
        <p style="font-size:12px;line-height:24px;margin:16px 0;color:rgb(51,51,51)">Email: {{.Email}}<br />Phone: {{if .Phone}}{{.Phone}}{{else}}-{{end}}{{if .Product}}<br />Product: {{if .ProductURL}}<a href="{{.ProductURL}}">{{.Product}}</a>{{else}}{{.Product}}{{end}}{{end}}<br />Received: {{.Created}}</p>
        <hr style="width:100%;border:none;border-top:1px solid #eaeaea;margin:26px 0" />
        <p style="font-size:10px;line-height:24px;margin:16px 0;text-align:center;color:rgb(156,163,175)">Sent by the {{.SiteName}} contact form. Reply to this email to answer the customer.<br />&copy;{{year}} {{.SiteName}}</p>
      </td></tr>
    </tbody>
  </table>
</body>
</html>`))

// ContactNotifyData is the data for contact form notification emails.
type ContactNotifyData struct {
	SiteName   string
	Name       string
	Email      string
	Phone      string
	Subject    string
	Body       string
	Product    string
	ProductURL string
	Created    string
}

func renderTemplate(tpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendContactNotify forwards a contact submission to the shop inbox. Replies
// go to the customer.
func (s *Sender) SendContactNotify(ctx context.Context, to []string, data ContactNotifyData) error {
	if data.SiteName == "" {
		data.SiteName = "Storefront"
	}
	html, err := renderTemplate(contactNotifyTpl, data)
	if err != nil {
		return err
	}
	return s.Send(ctx, Message{
		To:      to,
		ReplyTo: data.Email,
		Subject: fmt.Sprintf("[%s] %s", data.SiteName, data.Subject),
		HTML:    html,
	})
}
