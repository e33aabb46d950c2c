package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const defaultPlunkURL = "https://api.useplunk.com/v1/send"

type plunkConfig struct {
	APIKey string
	From   string
	APIURL string
}

var plunkCfg plunkConfig

// ConfigurePlunkFromEnv reads PLUNK_API_KEY (required) plus the optional
// PLUNK_FROM and PLUNK_API_URL overrides.
func ConfigurePlunkFromEnv() error {
	plunkCfg = plunkConfig{
		APIKey: os.Getenv("PLUNK_API_KEY"),
		From:   os.Getenv("PLUNK_FROM"),
		APIURL: os.Getenv("PLUNK_API_URL"),
	}
	if plunkCfg.APIURL == "" {
		plunkCfg.APIURL = defaultPlunkURL
	}
	if plunkCfg.APIKey == "" {
		return fmt.Errorf("plunk not configured: set PLUNK_API_KEY")
	}
	return nil
}

type plunkRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	From    string `json:"from,omitempty"`
	Reply   string `json:"reply,omitempty"`
}

func sendViaPlunk(to, subject, body string) error {
	if plunkCfg.APIKey == "" {
		if err := ConfigurePlunkFromEnv(); err != nil {
			return err
		}
	}

	b, _ := json.Marshal(plunkRequest{
		To:      to,
		Subject: subject,
		Body:    body,
		From:    plunkCfg.From,
		Reply:   os.Getenv("MAIL_REPLY_TO"),
	})
	req, err := http.NewRequest(http.MethodPost, plunkCfg.APIURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+plunkCfg.APIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("plunk request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		if len(detail) > 0 {
			return fmt.Errorf("plunk send: status %d: %s", resp.StatusCode, detail)
		}
		return fmt.Errorf("plunk send: status %d", resp.StatusCode)
	}
	return nil
}
