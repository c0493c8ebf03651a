package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #d7b56d; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				This is an automated message. Please do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendVerificationEmail sends the email verification link to a new user
func SendVerificationEmail(to, name, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", config.AppConfig.FrontendURL, token)
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Please confirm your email address to activate your account.</p>
		<a class="btn" href="%s">Verify Email</a>
		<p>The link expires in 24 hours.</p>`, name, verifyURL)
	return SendEmail([]string{to}, "Verify your email", getEmailTemplate("Email Verification", body))
}

// SendPasswordResetEmail sends the password reset link
func SendPasswordResetEmail(to, name, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", config.AppConfig.FrontendURL, token)
	body := fmt.Sprintf(`
		<h2>Hello, %s</h2>
		<p>We received a request to reset your password.</p>
		<a class="btn" href="%s">Reset Password</a>
		<p>The link expires in 1 hour. If you did not request this, you can ignore this email.</p>`, name, resetURL)
	return SendEmail([]string{to}, "Password Reset Request", getEmailTemplate("Password Reset", body))
}

// SendEnrollmentConfirmation confirms a new course enrollment
func SendEnrollmentConfirmation(to, name, courseTitle string) error {
	body := fmt.Sprintf(`
		<h2>Hello, %s</h2>
		<p>You are now enrolled in:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>Head to your dashboard to start learning.</p>`, name, courseTitle)
	return SendEmail([]string{to}, "Enrollment Confirmed", getEmailTemplate("Enrollment Confirmed", body))
}

// SendCourseCompletionEmail congratulates a student on finishing a course
func SendCourseCompletionEmail(to, name, courseTitle string) error {
	body := fmt.Sprintf(`
		<h2>Congratulations, %s!</h2>
		<p>You have completed:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>You can now request your completion certificate from your dashboard.</p>`, name, courseTitle)
	return SendEmail([]string{to}, "Course Completed", getEmailTemplate("Course Completed", body))
}

// SendWeeklyTeacherDigest sends a teacher the week's enrollment summary
func SendWeeklyTeacherDigest(to, name string, lines []string) error {
	items := ""
	for _, line := range lines {
		items += fmt.Sprintf("<li>%s</li>", line)
	}
	body := fmt.Sprintf(`
		<h2>Hello, %s</h2>
		<p>New enrollments in your courses this week:</p>
		<ul>%s</ul>`, name, items)
	return SendEmail([]string{to}, "Weekly Enrollment Digest", getEmailTemplate("Weekly Digest", body))
}
