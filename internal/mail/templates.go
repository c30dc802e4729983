package mail

import (
	"fmt"
	"html/template"
	"strings"
)

var dutyNotificationTmpl = template.Must(template.New("duty_notification").Parse(`<html>
<body>
<p>Olá{{if .AssignedName}}, {{.AssignedName}}{{end}}!</p>
<p><strong>{{.PurchaserName}}</strong> registrou uma compra em seu nome:</p>
<ul>
<li>Compra: <strong>{{.TransactionName}}</strong></li>
<li>Valor da parcela: <strong>{{.Amount}}</strong></li>
<li>Parcelas: <strong>{{.Installments}}</strong></li>
<li>Cartão: <strong>{{.CardName}}</strong> ({{.CardTypeLabel}})</li>
</ul>
<p>Acesse o aplicativo para aceitar ou recusar a cobrança.</p>
</body>
</html>`))

var dutyReminderTmpl = template.Must(template.New("duty_reminder").Parse(`<html>
<body>
<p>Olá{{if .AssignedName}}, {{.AssignedName}}{{end}}!</p>
<p>Você ainda tem uma cobrança pendente de <strong>{{.PurchaserName}}</strong>:</p>
<ul>
<li>Compra: <strong>{{.TransactionName}}</strong></li>
<li>Valor da parcela: <strong>{{.Amount}}</strong></li>
</ul>
<p>Acesse o aplicativo para aceitar ou recusar a cobrança.</p>
</body>
</html>`))

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(`<html>
<body>
<p>Olá, {{.Name}}!</p>
<p>Use o código abaixo para redefinir sua senha:</p>
<p><strong>{{.Code}}</strong></p>
<p>Se você não pediu a redefinição, ignore este email.</p>
</body>
</html>`))

type DutyMailData struct {
	AssignedName    string
	PurchaserName   string
	TransactionName string
	Amount          string
	Installments    int
	CardName        string
	CardTypeLabel   string
}

func RenderDutyNotification(data DutyMailData) (string, error) {
	var b strings.Builder
	if err := dutyNotificationTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render duty notification: %w", err)
	}
	return b.String(), nil
}

func RenderDutyReminder(data DutyMailData) (string, error) {
	var b strings.Builder
	if err := dutyReminderTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render duty reminder: %w", err)
	}
	return b.String(), nil
}

func RenderPasswordReset(name, code string) (string, error) {
	var b strings.Builder
	err := passwordResetTmpl.Execute(&b, struct{ Name, Code string }{name, code})
	if err != nil {
		return "", fmt.Errorf("render password reset: %w", err)
	}
	return b.String(), nil
}
