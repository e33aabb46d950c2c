package alerts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// enqueue pushes a task onto the given queue. It is a no-op when Init has
// not been called, so handlers can fire alerts without caring whether the
// worker is wired up.
func enqueue(taskType string, payload any, queue string) error {
	if client == nil {
		return nil
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(taskType, b)
	_, err := client.Enqueue(task, asynq.Queue(queue))
	return err
}

// EnqueueWelcomeEmail schedules a welcome email to a new user
func EnqueueWelcomeEmail(userID, email, name string) error {
	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	base = strings.TrimRight(base, "/")

	subject := fmt.Sprintf("Welcome to Skill Swap, %s!", name)
	body := fmt.Sprintf("Hi %s, thanks for joining Skill Swap.\n\nAdd the skills you can offer and the ones you want to learn, then start swapping: %s", name, base)

	env := EmailEnvelope{To: email, Subject: subject, Body: body}
	payload := WelcomeEmailPayload{UserID: userID, Name: name, Email: email, Envelope: env, SentAt: time.Now()}
	return enqueue(TaskWelcomeEmail, payload, "emails")
}

// EnqueueRequestReceived notifies the receiver of a new swap request
func EnqueueRequestReceived(receiverID, senderName, requestID string) error {
	payload := RequestReceivedPayload{ReceiverID: receiverID, SenderName: senderName, RequestID: requestID, SentAt: time.Now()}
	return enqueue(TaskRequestReceived, payload, "emails")
}

// EnqueueRequestResponded notifies the sender that the receiver accepted or rejected
func EnqueueRequestResponded(senderID, receiverName, requestID, status string) error {
	payload := RequestRespondedPayload{SenderID: senderID, ReceiverName: receiverName, RequestID: requestID, Status: status, SentAt: time.Now()}
	return enqueue(TaskRequestResponded, payload, "emails")
}

// EnqueueRatingReceived notifies a user that a swap partner rated them
func EnqueueRatingReceived(ratedUserID string, rating int, swapRequestID string) error {
	payload := RatingReceivedPayload{RatedUserID: ratedUserID, Rating: rating, SwapRequestID: swapRequestID, SentAt: time.Now()}
	return enqueue(TaskRatingReceived, payload, "alerts")
}

// EnqueueUserBanned notifies a user that their account was suspended
func EnqueueUserBanned(userID, reason string) error {
	payload := UserBannedPayload{UserID: userID, Reason: reason, SentAt: time.Now()}
	return enqueue(TaskUserBanned, payload, "alerts")
}
