package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/timebridge/timebridge-server/config"
	"github.com/timebridge/timebridge-server/utils"
)

// sendMail is the provider call, replaceable in tests.
var sendMail = func(msg *mail.SGMailV3) error {
	client := sendgrid.NewSendClient(os.Getenv(config.EnvSendgridKey))
	resp, err := client.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

type sendEmailReq struct {
	Name    string      `json:"name"`
	Email   interface{} `json:"email"` // string (possibly delimited) or array
	Message string      `json:"message"`
}

// SendEmail delivers a contact-form style message to one or more
// recipients.
func SendEmail(c *gin.Context) {
	var req sendEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	recipients := utils.NormalizeRecipients(req.Email)
	if req.Name == "" || req.Message == "" || len(recipients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	msg := mail.NewV3Mail()
	msg.SetFrom(mail.NewEmail("TimeBridge", os.Getenv(config.EnvSendgridFrom)))
	msg.Subject = fmt.Sprintf("New message from %s", req.Name)
	p := mail.NewPersonalization()
	for _, addr := range recipients {
		p.AddTos(mail.NewEmail("", addr))
	}
	msg.AddPersonalizations(p)
	msg.AddContent(
		mail.NewContent("text/plain", req.Message),
		mail.NewContent("text/html", "<p>"+strings.ReplaceAll(req.Message, "\n", "<br>")+"</p>"),
	)

	if err := sendMail(msg); err != nil {
		log.Printf("email send failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type confirmationReq struct {
	To      interface{} `json:"to"`
	Subject string      `json:"subject"`
	HTML    string      `json:"html"`
}

// SendMeetingConfirmation relays a prebuilt confirmation email.
func SendMeetingConfirmation(c *gin.Context) {
	var req confirmationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}

	recipients := utils.NormalizeRecipients(req.To)
	if req.Subject == "" || req.HTML == "" || len(recipients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required parameters"})
		return
	}

	msg := mail.NewV3Mail()
	msg.SetFrom(mail.NewEmail("TimeBridge", os.Getenv(config.EnvSendgridFrom)))
	msg.Subject = req.Subject
	p := mail.NewPersonalization()
	for _, addr := range recipients {
		p.AddTos(mail.NewEmail("", addr))
	}
	msg.AddPersonalizations(p)
	msg.AddContent(mail.NewContent("text/html", req.HTML))

	if err := sendMail(msg); err != nil {
		log.Printf("confirmation email failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email sent"})
}
