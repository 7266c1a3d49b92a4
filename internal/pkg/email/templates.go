package email

const (
	TemplateEnquiryReceived = "enquiry_received"
	TemplateEnquiryAlert    = "enquiry_alert"
)

// BaseTemplate is the base layout for all emails
const BaseTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f6f8; color: #1f2933; }
        .container { max-width: 600px; margin: 0 auto; padding: 32px 16px; }
        .card { background: #ffffff; border-radius: 8px; padding: 28px; border: 1px solid #d9e2ec; }
        h2 { font-size: 22px; margin: 0 0 16px; }
        p { font-size: 15px; line-height: 1.6; margin: 0 0 14px; }
        .muted { color: #627d98; font-size: 13px; }
        table.details td { padding: 4px 12px 4px 0; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            {{.Content}}
        </div>
        <p class="muted">This email was sent because an enquiry was submitted on our website.</p>
    </div>
</body>
</html>
`

// EnquiryReceivedTemplate is sent to the enquirer
const EnquiryReceivedTemplate = `
<h2>Thank you, {{.ContactName}}</h2>
<p>We have received your enquiry{{if .PropertyName}} about {{.PropertyName}}{{end}}. A member of our admissions team will be in touch shortly.</p>
{{if .ResidentName}}<p>We look forward to learning more about {{.ResidentName}}.</p>{{end}}
<p class="muted">Reference: {{.Reference}}</p>
`

// EnquiryAlertTemplate is sent to the admissions inbox
const EnquiryAlertTemplate = `
<h2>New enquiry</h2>
<table class="details">
    <tr><td>Contact</td><td>{{.ContactName}}</td></tr>
    <tr><td>Enquiry type</td><td>{{.EnquiryType}}</td></tr>
    <tr><td>Care type</td><td>{{.CareType}}</td></tr>
    {{if .PropertyName}}<tr><td>Property</td><td>{{.PropertyName}}</td></tr>{{end}}
    {{if .ResidentName}}<tr><td>Resident</td><td>{{.ResidentName}}</td></tr>{{end}}
    <tr><td>Reference</td><td>{{.Reference}}</td></tr>
</table>
`
