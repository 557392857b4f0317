package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"gugudan/internal/models"
	"gugudan/internal/validation"
)

// sendTimeout bounds one background report send
const sendTimeout = 30 * time.Second

// emailSender is the part of the SES client the service uses
type emailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends quiz reports to the parent via Amazon SES
type EmailService struct {
	client    emailSender
	fromEmail string
	fromName  string
	toEmail   string
	loc       *time.Location
	enabled   bool
	debug     bool
}

// NewEmailService creates a new email service. It is disabled when fromEmail
// or toEmail is empty.
func NewEmailService(awsRegion, fromEmail, fromName, toEmail string, loc *time.Location, debug bool) (*EmailService, error) {
	if loc == nil {
		loc = time.Local
	}
	if fromEmail == "" || toEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL or PARENT_EMAIL not configured")
		return &EmailService{loc: loc, enabled: false, debug: debug}, nil
	}

	for _, addr := range []string{fromEmail, toEmail} {
		if err := validation.ValidateEmail(addr); err != nil {
			return nil, fmt.Errorf("invalid email address %q: %w", addr, err)
		}
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From Email: %s", fromEmail)
		log.Printf("[DEBUG] To Email: %s", toEmail)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return newEmailService(sesv2.NewFromConfig(cfg), fromEmail, fromName, toEmail, loc, debug), nil
}

func newEmailService(client emailSender, fromEmail, fromName, toEmail string, loc *time.Location, debug bool) *EmailService {
	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
		loc:       loc,
		enabled:   true,
		debug:     debug,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SessionCompleted sends the report in the background so finishing a quiz
// never waits on SES.
func (s *EmailService) SessionCompleted(_ context.Context, result models.Result, newBadges []models.Badge) {
	if !s.enabled {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := s.SendSessionReport(ctx, result, newBadges); err != nil {
			log.Printf("Failed to send session report: %v", err)
		}
	}()
}

// SendSessionReport mails a summary of one finished quiz to the parent
func (s *EmailService) SendSessionReport(ctx context.Context, result models.Result, newBadges []models.Badge) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): session report %s", result.ID)
		return nil
	}

	subject, htmlBody, textBody := s.renderSessionReport(result, newBadges)

	if s.debug {
		log.Printf("[DEBUG] Sending session report: subject=%s, to=%s", subject, s.toEmail)
		log.Printf("[DEBUG] HTML body length: %d bytes", len(htmlBody))
		log.Printf("[DEBUG] Text body length: %d bytes", len(textBody))
	}

	return s.sendEmail(ctx, s.toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) renderSessionReport(result models.Result, newBadges []models.Badge) (subject, htmlBody, textBody string) {
	when := result.At.In(s.loc).Format("2006-01-02 15:04")
	subject = fmt.Sprintf("[구구단 놀이터] %d단 퀴즈 %d/%d", result.Dan, result.Correct, result.Total)
	avgSeconds := float64(result.PerQuestionMsAvg) / 1000

	var wrongText, wrongHTML strings.Builder
	for _, w := range result.WrongItems {
		fmt.Fprintf(&wrongText, "- %d × %d = %d (고른 답: %d)\n", w.Dan, w.Right, w.Answer, w.Picked)
		fmt.Fprintf(&wrongHTML, "<li>%d × %d = %d (고른 답: %d)</li>", w.Dan, w.Right, w.Answer, w.Picked)
	}
	if len(result.WrongItems) == 0 {
		wrongText.WriteString("- 없음\n")
		wrongHTML.WriteString("<li>없음</li>")
	}

	var badgeText, badgeHTML strings.Builder
	for _, b := range newBadges {
		fmt.Fprintf(&badgeText, "- %s %s\n", b.Emoji, b.Title)
		fmt.Fprintf(&badgeHTML, "<li>%s %s</li>", b.Emoji, html.EscapeString(b.Title))
	}

	htmlBody = fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #f59e0b; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #fffbeb; padding: 30px; border-radius: 0 0 5px 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>%d단 퀴즈 결과</h1>
		</div>
		<div class="content">
			<p>%s</p>
			<p><strong>%d / %d</strong> 정답 (%d%%), 문제당 평균 %.1f초</p>
			<p>틀린 문제:</p>
			<ul>%s</ul>
			%s
		</div>
		<div class="footer">
			<p>구구단 놀이터에서 자동으로 보낸 메일입니다.</p>
		</div>
	</div>
</body>
</html>
`, result.Dan, when, result.Correct, result.Total, result.Accuracy(), avgSeconds, wrongHTML.String(), badgeSection(badgeHTML.String()))

	textBody = fmt.Sprintf(`%d단 퀴즈 결과 (%s)

%d / %d 정답 (%d%%), 문제당 평균 %.1f초

틀린 문제:
%s`, result.Dan, when, result.Correct, result.Total, result.Accuracy(), avgSeconds, wrongText.String())
	if badgeText.Len() > 0 {
		textBody += "\n새 스티커:\n" + badgeText.String()
	}
	textBody += "\n---\n구구단 놀이터에서 자동으로 보낸 메일입니다.\n"
	return subject, htmlBody, textBody
}

func badgeSection(items string) string {
	if items == "" {
		return ""
	}
	return "<p>새 스티커:</p><ul>" + items + "</ul>"
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if s.debug {
		log.Printf("[DEBUG] Calling SES SendEmail API...")
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		if s.debug {
			log.Printf("[DEBUG] SES SendEmail failed: %v", err)
		}
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] Message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
