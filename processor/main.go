package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/database"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/repositories"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/services"

	"gopkg.in/gomail.v2"
)

// Replay interval for the offline mutation queue.
const replayEvery = 5 * time.Minute

func main() {

	config.LoadConfig()

	db, err := database.GetDBConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	issuance := services.NewIssuanceService(repositories.NewIssuanceStore(db))
	replay := services.NewReplayService(db, issuance)

	fmt.Println("📦 Offline queue processor started")

	for {
		result, err := replay.Replay()
		if err != nil {
			log.Println("❌ Replay pass failed:", err)
		} else if result.Processed > 0 {
			fmt.Printf("✅ Replayed %d mutation(s), %d succeeded, %d failed\n",
				result.Processed, result.Succeeded, len(result.Failed))

			if len(result.Failed) > 0 {
				if err := sendFailureDigest(result.Failed); err != nil {
					log.Println("❌ Failed to send digest:", err)
				}
			}
		}

		time.Sleep(replayEvery)
	}
}

// sendFailureDigest mails the failed mutations to the property office so
// someone re-enters them by hand.
func sendFailureDigest(failed []models.OfflineMutation) error {
	if config.SMTPHost == "" || len(config.AlertEmails) == 0 {
		return nil
	}

	var rows strings.Builder
	for _, mutation := range failed {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			mutation.ID, mutation.Name,
			mutation.QueuedAt.Format("2006-01-02 15:04:05"),
			mutation.LastError))
	}

	subject := fmt.Sprintf("⚠️ %d offline mutation(s) failed to replay", len(failed))
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Offline queue replay failures</h3>
				<table border="1" cellpadding="4">
					<tr><th>ID</th><th>Mutation</th><th>Queued At</th><th>Error</th></tr>
					%s
				</table>
				<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>
			</body>
		</html>
	`, rows.String())

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", config.AlertEmails...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return err
	}

	fmt.Println("✅ Failure digest sent to:", config.AlertEmails)
	return nil
}
