package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"agencybooks/config"
	"agencybooks/stats"

	"gopkg.in/gomail.v2"
)

var (
	// ErrMailDisabled 邮件服务未启用
	ErrMailDisabled = errors.New("邮件服务未启用，请配置 AGENCY_EMAIL_ENABLED=true")
	// ErrNoRecipient 请求与配置中均未指定收件人
	ErrNoRecipient = errors.New("未指定收件人")
)

// ReportMail 报表邮件
type ReportMail struct {
	To          string // 为空时使用配置中的默认收件人
	Filename    string
	ContentType string
	Attachment  []byte
	Summary     stats.Dashboard
	GeneratedAt time.Time
}

// Mailer 报表邮件发送
type Mailer struct {
	cfg  config.EmailConfig
	send func(*gomail.Message) error
}

// NewMailer 创建邮件发送器
func NewMailer(cfg config.EmailConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	m.send = func(msg *gomail.Message) error {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		return d.DialAndSend(msg)
	}
	return m
}

// Enabled 是否已启用
func (m *Mailer) Enabled() bool {
	return m.cfg.Enabled
}

// SendReport 发送带附件的报表邮件，返回实际收件人
func (m *Mailer) SendReport(r ReportMail) (string, error) {
	if !m.cfg.Enabled {
		return "", ErrMailDisabled
	}
	to := strings.TrimSpace(r.To)
	if to == "" {
		to = m.cfg.To
	}
	if to == "" {
		return "", ErrNoRecipient
	}

	if err := m.send(m.buildReportMessage(to, r)); err != nil {
		return "", fmt.Errorf("发送邮件失败: %w", err)
	}
	return to, nil
}

// buildReportMessage 构造报表邮件
func (m *Mailer) buildReportMessage(to string, r ReportMail) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.cfg.Username, m.cfg.From))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("【旅行社账本】财务报表 %s", r.GeneratedAt.Format("2006-01-02")))
	msg.SetBody("text/html", reportEmailBody(r.Summary, r.GeneratedAt))

	contentType := r.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	data := r.Attachment
	msg.Attach(r.Filename,
		gomail.SetHeader(map[string][]string{"Content-Type": {contentType}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
	)
	return msg
}

// reportEmailBody 生成报表邮件内容
func reportEmailBody(d stats.Dashboard, generatedAt time.Time) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: 'Microsoft YaHei', Arial, sans-serif; padding: 20px;">
    <h2>📊 财务报表</h2>
    <table style="border-collapse: collapse;">
        <tr><td style="padding: 4px 12px;">销售总额</td><td style="padding: 4px 12px;">%s</td></tr>
        <tr><td style="padding: 4px 12px;">支出总额</td><td style="padding: 4px 12px;">%s</td></tr>
        <tr><td style="padding: 4px 12px;">供应商付款</td><td style="padding: 4px 12px;">%s</td></tr>
        <tr><td style="padding: 4px 12px;">净利润</td><td style="padding: 4px 12px;"><strong>%s</strong></td></tr>
        <tr><td style="padding: 4px 12px;">利润率</td><td style="padding: 4px 12px;">%s%%</td></tr>
    </table>
    <p>完整数据见附件。</p>
    <p style="color: #666;">生成时间: %s</p>
</body>
</html>
`,
		d.TotalSales.StringFixed(2),
		d.TotalExpenses.StringFixed(2),
		d.TotalSupplierPayments.StringFixed(2),
		d.NetProfit.StringFixed(2),
		d.ProfitMargin.StringFixed(2),
		generatedAt.Format("2006-01-02 15:04:05"),
	)
}
