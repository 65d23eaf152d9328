package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/gomail.v2"

	"rentalincome-backend/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendDailySummary(ctx context.Context, to string, summary *domain.ActivitySummary) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Reservation activity for %s", summary.Date.Format("2006-01-02")))
	m.SetBody("text/plain", formatSummary(summary))

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send daily summary: %w", err)
	}

	return nil
}

func formatSummary(summary *domain.ActivitySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reservation activity for %s\n\n", summary.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "Records ingested: %d\n", summary.Total)
	fmt.Fprintf(&b, "Total amount (excl. cancelled): %.2f EUR\n\n", float64(summary.TotalAmountCents)/100)

	b.WriteString("By status:\n")
	for _, status := range []domain.IncomeStatus{domain.IncomeStatusConfirmed, domain.IncomeStatusPending, domain.IncomeStatusCancelled} {
		fmt.Fprintf(&b, "  %-10s %d\n", status, summary.ByStatus[status])
	}

	b.WriteString("\nBy source:\n")
	sources := make([]string, 0, len(summary.BySource))
	for src := range summary.BySource {
		sources = append(sources, string(src))
	}
	sort.Strings(sources)
	for _, src := range sources {
		activity := summary.BySource[domain.Channel(src)]
		fmt.Fprintf(&b, "  %-10s %d records, %.2f EUR\n", src, activity.Count, float64(activity.AmountCents)/100)
	}

	return b.String()
}
