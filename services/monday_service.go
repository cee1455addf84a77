package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"estimator/models"

	"golang.org/x/oauth2"
)

const mondayAPIURL = "https://api.monday.com/v2"

// MondayService mirrors locked quotes onto a Monday.com board so the sales
// pipeline sees estimate revisions without opening the app.
type MondayService struct {
	boardID    string
	httpClient *http.Client
}

// NewMondayService builds a client from MONDAY_API_TOKEN and
// MONDAY_BOARD_ID. Returns nil when the integration is not configured;
// callers treat a nil service as disabled.
func NewMondayService() *MondayService {
	token := os.Getenv("MONDAY_API_TOKEN")
	boardID := os.Getenv("MONDAY_BOARD_ID")
	if token == "" || boardID == "" {
		log.Println("monday: integration not configured, skipping")
		return nil
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(context.Background(), src)
	client.Timeout = 15 * time.Second

	return &MondayService{boardID: boardID, httpClient: client}
}

type mondayRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type mondayResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (ms *MondayService) execute(ctx context.Context, req mondayRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal monday request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, mondayAPIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build monday request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := ms.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("monday request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("monday API returned status %d", resp.StatusCode)
	}

	var parsed mondayResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode monday response: %v", err)
	}
	if len(parsed.Errors) > 0 {
		return fmt.Errorf("monday API error: %s", parsed.Errors[0].Message)
	}
	return nil
}

// PushLockedQuote creates or refreshes a board item for a locked quote
// version. Failures are logged by the caller; the quote lifecycle never
// blocks on the board.
func (ms *MondayService) PushLockedQuote(ctx context.Context, quote models.Quote, versionNumber int) error {
	if ms == nil {
		return nil
	}

	columnValues, err := json.Marshal(map[string]interface{}{
		"text":    quote.ClientName,
		"numbers": quote.Total(),
		"status":  map[string]string{"label": "Quoted"},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal column values: %v", err)
	}

	itemName := fmt.Sprintf("%s - %s (Rev %d)", quote.BaseNumber, quote.JobName, versionNumber)
	return ms.execute(ctx, mondayRequest{
		Query: `mutation ($board: ID!, $name: String!, $columns: JSON) {
			create_item(board_id: $board, item_name: $name, column_values: $columns) { id }
		}`,
		Variables: map[string]interface{}{
			"board":   ms.boardID,
			"name":    itemName,
			"columns": string(columnValues),
		},
	})
}
