package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/credtrack/cpd-backend/internal/domain"
)

func kindLabel(kind domain.ReminderKind) string {
	switch kind {
	case domain.ReminderApplication:
		return "申込期日"
	case domain.ReminderPayment:
		return "支払期日"
	case domain.ReminderTraining:
		return "研修日"
	}
	return string(kind)
}

func kindEmoji(kind domain.ReminderKind) string {
	switch kind {
	case domain.ReminderApplication:
		return "📝"
	case domain.ReminderPayment:
		return "💰"
	case domain.ReminderTraining:
		return "📚"
	}
	return ""
}

func kindNote(kind domain.ReminderKind) string {
	switch kind {
	case domain.ReminderApplication:
		return "⚠️ 申込期日を過ぎると受講できなくなる可能性があります。お早めにお手続きください。"
	case domain.ReminderPayment:
		return "⚠️ 支払期日を過ぎると申込がキャンセルされる可能性があります。お早めにお手続きください。"
	case domain.ReminderTraining:
		return "📌 研修当日の準備をお忘れなく。充実した研修となりますように！"
	}
	return ""
}

func formatDate(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}

// message holds one rendered reminder.
type message struct {
	subject string
	html    string
	text    string
}

// buildMessage renders the reminder email for one deadline of one plan.
func buildMessage(userName string, p *domain.PlannedTraining, c Candidate, lookaheadDays int, appName string) message {
	label := kindLabel(c.Kind)
	emoji := kindEmoji(c.Kind)
	date := formatDate(c.Deadline)

	subject := fmt.Sprintf("%s 【リマインド】%sの%sが近づいています", emoji, p.Name, label)

	var details strings.Builder
	fmt.Fprintf(&details, "<p style=\"margin: 0;\"><strong>%s:</strong> %s</p>", label, date)
	if p.Fee != nil {
		fmt.Fprintf(&details, "<p style=\"margin: 10px 0 0 0;\"><strong>研修費:</strong> %d円</p>", *p.Fee)
	}
	if p.Memo != nil && *p.Memo != "" {
		fmt.Fprintf(&details, "<p style=\"margin: 10px 0 0 0; color: #6b7280;\"><strong>メモ:</strong> %s</p>", *p.Memo)
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html lang="ja">
<body style="font-family: sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="font-size: 24px;">%s %sのリマインド</h1>
  <p>%sさん、こんにちは。</p>
  <p>以下の研修の<strong>%s</strong>が<strong>%d日後</strong>に迫っています。</p>
  <div style="background: #ecfdf5; border-left: 4px solid #10b981; padding: 20px; margin: 20px 0;">
    <h2 style="margin: 0 0 10px 0; font-size: 18px;">%s</h2>
    %s
  </div>
  <p>%s</p>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 30px 0;">
  <p style="color: #6b7280; font-size: 12px;">
    このメールは%sから自動送信されています。<br>
    リマインダー設定は各研修予定の編集画面から変更できます。
  </p>
</body>
</html>`,
		emoji, label, userName, label, lookaheadDays, p.Name, details.String(), kindNote(c.Kind), appName)

	var text strings.Builder
	fmt.Fprintf(&text, "%sさん、こんにちは。\n\n", userName)
	fmt.Fprintf(&text, "以下の研修の%sが%d日後に迫っています。\n\n", label, lookaheadDays)
	text.WriteString("━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&text, "%s\n%s: %s\n", p.Name, label, date)
	if p.Fee != nil {
		fmt.Fprintf(&text, "研修費: %d円\n", *p.Fee)
	}
	if p.Memo != nil && *p.Memo != "" {
		fmt.Fprintf(&text, "メモ: %s\n", *p.Memo)
	}
	text.WriteString("━━━━━━━━━━━━━━━━━━━━━━\n\n")
	text.WriteString("お早めにお手続きください。\n\n---\n")
	text.WriteString(appName)

	return message{subject: subject, html: html, text: text.String()}
}
