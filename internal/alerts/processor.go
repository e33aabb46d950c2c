package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/skillswap/api/internal/db"
)

var (
	client *asynq.Client
	server *asynq.Server
)

// Init starts the Asynq server and initializes a shared client.
func Init(redisAddr string) {
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	opts := asynq.RedisClientOpt{Addr: redisAddr}
	client = asynq.NewClient(opts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcomeEmail, handleWelcomeEmail)
	mux.HandleFunc(TaskRequestReceived, handleRequestReceived)
	mux.HandleFunc(TaskRequestResponded, handleRequestResponded)
	mux.HandleFunc(TaskRatingReceived, handleRatingReceived)
	mux.HandleFunc(TaskUserBanned, handleUserBanned)

	server = asynq.NewServer(opts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"emails": 10,
			"alerts": 5,
		},
	})
	go func() {
		if err := server.Run(mux); err != nil {
			log.Printf("Asynq server stopped: %v", err)
		}
	}()

	log.Printf("Asynq initialized (addr=%s)", redisAddr)
}

// Close releases client and stops server.
func Close() {
	if client != nil {
		_ = client.Close()
	}
	if server != nil {
		server.Shutdown()
	}
}

// userContact resolves a recipient's email and name.
func userContact(ctx context.Context, userID string) (email, name string, err error) {
	err = db.Conn.QueryRow(ctx,
		`SELECT email, name FROM users WHERE id = $1`, userID).Scan(&email, &name)
	return email, name, err
}

// Handlers below record an in-app notification and send the email.

func handleWelcomeEmail(_ context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if err := CreateNotification(p.UserID, "WELCOME", "Welcome to Skill Swap",
		"Your account is ready. Add your skills to start swapping.", nil); err != nil {
		log.Printf("[notify][ERROR] WelcomeEmail notification insert failed: %v", err)
	}
	if err := SendEmail(p.Email, p.Envelope.Subject, p.Envelope.Body); err != nil {
		log.Printf("[notify][ERROR] WelcomeEmail send failed: %v", err)
		return err
	}
	log.Printf("[notify] WelcomeEmail sent -> to=%s user=%s", p.Email, p.UserID)
	return nil
}

func handleRequestReceived(ctx context.Context, t *asynq.Task) error {
	var p RequestReceivedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	title := "New swap request"
	body := fmt.Sprintf("%s sent you a swap request.", p.SenderName)
	if err := CreateNotification(p.ReceiverID, "SWAP_REQUEST", title, body, &p.RequestID); err != nil {
		log.Printf("[notify][ERROR] RequestReceived notification insert failed: %v", err)
	}

	email, _, err := userContact(ctx, p.ReceiverID)
	if err != nil {
		return err
	}
	if err := SendEmail(email, title, body); err != nil {
		log.Printf("[notify][ERROR] RequestReceived send failed: %v", err)
		return err
	}
	log.Printf("[notify] RequestReceived sent -> request=%s to=%s", p.RequestID, email)
	return nil
}

func handleRequestResponded(ctx context.Context, t *asynq.Task) error {
	var p RequestRespondedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	title := fmt.Sprintf("Swap request %s", strings.ToLower(p.Status))
	body := fmt.Sprintf("%s %s your swap request.", p.ReceiverName, strings.ToLower(p.Status))
	if err := CreateNotification(p.SenderID, "SWAP_RESPONSE", title, body, &p.RequestID); err != nil {
		log.Printf("[notify][ERROR] RequestResponded notification insert failed: %v", err)
	}

	email, _, err := userContact(ctx, p.SenderID)
	if err != nil {
		return err
	}
	if err := SendEmail(email, title, body); err != nil {
		log.Printf("[notify][ERROR] RequestResponded send failed: %v", err)
		return err
	}
	log.Printf("[notify] RequestResponded sent -> request=%s status=%s", p.RequestID, p.Status)
	return nil
}

func handleRatingReceived(ctx context.Context, t *asynq.Task) error {
	var p RatingReceivedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	title := "You received a rating"
	body := fmt.Sprintf("A swap partner rated you %d out of 5.", p.Rating)
	if err := CreateNotification(p.RatedUserID, "RATING", title, body, &p.SwapRequestID); err != nil {
		log.Printf("[notify][ERROR] RatingReceived notification insert failed: %v", err)
	}

	email, _, err := userContact(ctx, p.RatedUserID)
	if err != nil {
		return err
	}
	if err := SendEmail(email, title, body); err != nil {
		log.Printf("[notify][ERROR] RatingReceived send failed: %v", err)
		return err
	}
	log.Printf("[notify] RatingReceived sent -> swap=%s rating=%d", p.SwapRequestID, p.Rating)
	return nil
}

func handleUserBanned(ctx context.Context, t *asynq.Task) error {
	var p UserBannedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	title := "Your account has been suspended"
	body := fmt.Sprintf("Your Skill Swap account was suspended. Reason: %s", p.Reason)

	email, _, err := userContact(ctx, p.UserID)
	if err != nil {
		return err
	}
	if err := SendEmail(email, title, body); err != nil {
		log.Printf("[notify][ERROR] UserBanned send failed: %v", err)
		return err
	}
	log.Printf("[notify] UserBanned sent -> user=%s", p.UserID)
	return nil
}
