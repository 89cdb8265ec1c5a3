package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"vendsim/internal/config"
)

// Message represents an outbound stock alert.
type Message struct {
	MachineID string `json:"machine_id"`
	State     string `json:"state"`
	Text      string `json:"text"`
}

// SendWebhook posts the alert to the configured webhook if any.
func SendWebhook(cfg config.Config, msg Message) error {
	if cfg.WebhookURL == "" {
		return nil
	}
	buf, _ := json.Marshal(msg)
	req, _ := http.NewRequest(http.MethodPost, cfg.WebhookURL, bytes.NewBuffer(buf))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
