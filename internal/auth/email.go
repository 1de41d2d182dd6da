package auth

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"vocabpool/internal/config"
	"vocabpool/internal/logging"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

var log = logging.Named("email")

// EmailService handles sending emails via AWS SES
type EmailService struct {
	sesClient    *sesv2.Client
	fromEmail    string
	fromName     string
	frontendURL  string
	supportEmail string
	enabled      bool
}

// NewEmailService creates a new email service using the application config.
// If AWS_REGION is not set, emails are logged to console (dev mode).
func NewEmailService(cfg *config.Config) *EmailService {
	es := &EmailService{
		fromEmail:    cfg.Email.FromEmail,
		fromName:     cfg.Email.FromName,
		frontendURL:  cfg.FrontendURL,
		supportEmail: cfg.Email.SupportEmail,
	}

	if cfg.Email.AWSRegion == "" {
		log.Warn().Msg("no AWS_REGION set, running in dev mode (emails logged to console)")
		return es
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Email.AWSRegion),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load AWS config, falling back to dev mode")
		return es
	}

	es.sesClient = sesv2.NewFromConfig(awsCfg)
	es.enabled = true
	log.Info().Str("region", cfg.Email.AWSRegion).Msg("AWS SES enabled")
	return es
}

// EmailTemplate represents an email template
type EmailTemplate struct {
	Subject string
	Body    string
}

// EmailVerificationData represents data for email verification
type EmailVerificationData struct {
	UserName     string
	VerifyURL    string
	ExpiresAt    time.Time
	SupportEmail string
}

// PasswordResetData represents data for password reset
type PasswordResetData struct {
	UserName     string
	ResetURL     string
	ExpiresAt    time.Time
	SupportEmail string
}

func (es *EmailService) sendEmail(toEmail, toName, subject, htmlBody string) error {
	if !es.enabled {
		log.Info().Str("to", toEmail).Str("name", toName).Str("subject", subject).
			Msg("dev mode email (set AWS_REGION to enable real delivery via SES)")
		return nil
	}

	fromAddr := fmt.Sprintf("%s <%s>", es.fromName, es.fromEmail)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: &fromAddr,
		Destination: &sestypes.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: &subject},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: &htmlBody},
				},
			},
		},
	}

	_, err := es.sesClient.SendEmail(context.Background(), input)
	if err != nil {
		return fmt.Errorf("SES SendEmail failed: %w", err)
	}

	log.Info().Str("to", toEmail).Msg("email sent")
	return nil
}

// SendEmailVerification sends an email verification email
func (es *EmailService) SendEmailVerification(email, name, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", es.frontendURL, token)

	if !es.enabled {
		log.Info().Str("email", email).Str("verify_url", verifyURL).Msg("dev mode email verification")
		return nil
	}

	data := EmailVerificationData{
		UserName:     name,
		VerifyURL:    verifyURL,
		ExpiresAt:    time.Now().Add(24 * time.Hour),
		SupportEmail: es.supportEmail,
	}

	emailTemplate, err := es.getEmailVerificationTemplate()
	if err != nil {
		return fmt.Errorf("failed to get email template: %w", err)
	}

	emailBody, err := es.renderTemplate(emailTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return es.sendEmail(email, name, emailTemplate.Subject, emailBody)
}

// SendPasswordReset sends a password reset email
func (es *EmailService) SendPasswordReset(email, name, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", es.frontendURL, token)

	if !es.enabled {
		log.Info().Str("email", email).Str("reset_url", resetURL).Msg("dev mode password reset")
		return nil
	}

	data := PasswordResetData{
		UserName:     name,
		ResetURL:     resetURL,
		ExpiresAt:    time.Now().Add(1 * time.Hour),
		SupportEmail: es.supportEmail,
	}

	emailTemplate, err := es.getPasswordResetTemplate()
	if err != nil {
		return fmt.Errorf("failed to get email template: %w", err)
	}

	emailBody, err := es.renderTemplate(emailTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return es.sendEmail(email, name, emailTemplate.Subject, emailBody)
}

func (es *EmailService) getEmailVerificationTemplate() (*EmailTemplate, error) {
	subject := "Verify Your Email - Vocabpool"

	body := `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Verify Your Email</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #0d7377, #0ea5a5); padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { color: white; margin: 0; }
        .content { padding: 20px; background: #ffffff; }
        .button { 
            display: inline-block; 
            background-color: #0d7377; 
            color: white; 
            padding: 12px 24px; 
            text-decoration: none; 
            border-radius: 6px; 
            margin: 20px 0;
            font-weight: bold;
        }
        .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #666; border-radius: 0 0 8px 8px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome to Vocabpool!</h1>
        </div>
        <div class="content">
            <p>Hello {{.UserName}},</p>
            <p>Thank you for signing up for Vocabpool. To complete your registration, please verify your email address by clicking the button below:</p>
            <p style="text-align: center;">
                <a href="{{.VerifyURL}}" class="button">Verify Email Address</a>
            </p>
            <p>This verification link will expire on {{.ExpiresAt.Format "January 2, 2006 at 3:04 PM MST"}}.</p>
            <p>If you didn't create an account with us, please ignore this email.</p>
            <p>Best regards,<br>The Vocabpool Team</p>
        </div>
        <div class="footer">
            <p>If you're having trouble clicking the button, copy and paste the URL below into your web browser:</p>
            <p>{{.VerifyURL}}</p>
            <p>Need help? Contact us at {{.SupportEmail}}</p>
        </div>
    </div>
</body>
</html>`

	return &EmailTemplate{
		Subject: subject,
		Body:    body,
	}, nil
}

func (es *EmailService) getPasswordResetTemplate() (*EmailTemplate, error) {
	subject := "Reset Your Password - Vocabpool"

	body := `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Reset Your Password</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #dc3545, #ff6b6b); padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { color: white; margin: 0; }
        .content { padding: 20px; background: #ffffff; }
        .button { 
            display: inline-block; 
            background-color: #dc3545; 
            color: white; 
            padding: 12px 24px; 
            text-decoration: none; 
            border-radius: 6px; 
            margin: 20px 0;
            font-weight: bold;
        }
        .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #666; border-radius: 0 0 8px 8px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Password Reset Request</h1>
        </div>
        <div class="content">
            <p>Hello {{.UserName}},</p>
            <p>We received a request to reset your password for your Vocabpool account. Click the button below to reset your password:</p>
            <p style="text-align: center;">
                <a href="{{.ResetURL}}" class="button">Reset Password</a>
            </p>
            <p>This password reset link will expire on {{.ExpiresAt.Format "January 2, 2006 at 3:04 PM MST"}}.</p>
            <p>If you didn't request a password reset, please ignore this email. Your password will remain unchanged.</p>
            <p>Best regards,<br>The Vocabpool Team</p>
        </div>
        <div class="footer">
            <p>If you're having trouble clicking the button, copy and paste the URL below into your web browser:</p>
            <p>{{.ResetURL}}</p>
            <p>Need help? Contact us at {{.SupportEmail}}</p>
        </div>
    </div>
</body>
</html>`

	return &EmailTemplate{
		Subject: subject,
		Body:    body,
	}, nil
}

func (es *EmailService) renderTemplate(emailTpl *EmailTemplate, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(emailTpl.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
