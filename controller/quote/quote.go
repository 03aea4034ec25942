package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Quote is one entry of the quote API response.
type Quote struct {
	Text   string `json:"q"`
	Author string `json:"a"`
}

// Client fetches the daily quote. It holds no state beyond the endpoint and
// never touches task data.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

func NewClient(apiURL string) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (cl *Client) Today(ctx context.Context) (*Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cl.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var quotes []Quote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("quote API returned no quotes")
	}
	return &quotes[0], nil
}

func QuoteController(router *gin.Engine, apiURL string) {
	client := NewClient(apiURL)
	router.GET("/quote", func(c *gin.Context) {
		GetQuote(c, client)
	})
}

func GetQuote(c *gin.Context, client *Client) {
	quote, err := client.Today(c.Request.Context())
	if err != nil {
		log.Printf("API Error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch quote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote":  quote.Text,
		"author": quote.Author,
	})
}
