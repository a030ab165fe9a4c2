package service

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"agencybooks/config"
	"agencybooks/stats"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func newTestMailer(enabled bool) (*Mailer, *[]*gomail.Message) {
	var sent []*gomail.Message
	m := NewMailer(config.EmailConfig{
		Enabled:  enabled,
		Username: "books@example.com",
		From:     "Agency Books",
		To:       "owner@example.com",
	})
	m.send = func(msg *gomail.Message) error {
		sent = append(sent, msg)
		return nil
	}
	return m, &sent
}

func testReport() ReportMail {
	return ReportMail{
		Filename:    "travel_agency_report_2024-01-10.csv",
		ContentType: "text/csv; charset=utf-8",
		Attachment:  []byte("SALES DATA\n"),
		Summary: stats.Dashboard{
			TotalSales:   decimal.NewFromInt(150),
			NetProfit:    decimal.NewFromInt(110),
			ProfitMargin: decimal.RequireFromString("73.33"),
		},
		GeneratedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local),
	}
}

func TestSendReport_Disabled(t *testing.T) {
	m, sent := newTestMailer(false)
	assert.False(t, m.Enabled())
	_, err := m.SendReport(testReport())
	assert.ErrorIs(t, err, ErrMailDisabled)
	assert.Empty(t, *sent)
}

func TestSendReport_DefaultRecipient(t *testing.T) {
	m, sent := newTestMailer(true)
	assert.True(t, m.Enabled())
	to, err := m.SendReport(testReport())
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", to)
	require.Len(t, *sent, 1)
	assert.Equal(t, []string{"owner@example.com"}, (*sent)[0].GetHeader("To"))
}

func TestSendReport_ExplicitRecipientAndAttachment(t *testing.T) {
	m, sent := newTestMailer(true)
	r := testReport()
	r.To = " boss@example.com "
	to, err := m.SendReport(r)
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", to)

	var buf bytes.Buffer
	_, err = (*sent)[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "travel_agency_report_2024-01-10.csv")
	assert.Contains(t, raw, "text/csv")
}

func TestSendReport_SendError(t *testing.T) {
	m, _ := newTestMailer(true)
	m.send = func(*gomail.Message) error { return errors.New("connection refused") }
	_, err := m.SendReport(testReport())
	assert.ErrorContains(t, err, "发送邮件失败")
}

func TestSendReport_NoRecipient(t *testing.T) {
	m := NewMailer(config.EmailConfig{Enabled: true})
	_, err := m.SendReport(testReport())
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestReportEmailBody(t *testing.T) {
	body := reportEmailBody(testReport().Summary, time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local))
	assert.Contains(t, body, "150.00")
	assert.Contains(t, body, "110.00")
	assert.Contains(t, body, "73.33%")
	assert.Contains(t, body, "2024-01-10 09:00:00")
}
