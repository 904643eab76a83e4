package greenapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/guonaihong/gout"
	"github.com/ratelab/greencast/internal/greenapi"
)

// HTTPClient talks to the Green API REST endpoints. Method URLs follow
// the {base}/waInstance{id}/{method}/{token} scheme.
type HTTPClient struct {
	timeout time.Duration
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{timeout: timeout}
}

func (c *HTTPClient) SendMessage(ctx context.Context, acc greenapi.Account, chatID, message string) (greenapi.SendResult, error) {
	var (
		result greenapi.SendResult
		code   int
	)
	err := gout.POST(methodURL(acc.APIURL, acc, "sendMessage")).
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetJSON(gout.H{"chatId": chatID, "message": message}).
		BindJSON(&result).
		Code(&code).
		Do()
	if err != nil {
		return greenapi.SendResult{}, fmt.Errorf("sendMessage request failed: %w", err)
	}
	if code != http.StatusOK {
		return greenapi.SendResult{}, fmt.Errorf("sendMessage returned status %d", code)
	}
	return result, nil
}

func (c *HTTPClient) SendFileByUpload(ctx context.Context, acc greenapi.Account, chatID, filePath, caption string) (greenapi.SendResult, error) {
	var (
		result greenapi.SendResult
		code   int
	)
	err := gout.POST(methodURL(acc.MediaURL, acc, "sendFileByUpload")).
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetForm(gout.H{
			"chatId":  chatID,
			"caption": caption,
			"file":    gout.FormFile(filePath),
		}).
		BindJSON(&result).
		Code(&code).
		Do()
	if err != nil {
		return greenapi.SendResult{}, fmt.Errorf("sendFileByUpload request failed: %w", err)
	}
	if code != http.StatusOK {
		return greenapi.SendResult{}, fmt.Errorf("sendFileByUpload returned status %d", code)
	}
	return result, nil
}

func (c *HTTPClient) GetStateInstance(ctx context.Context, acc greenapi.Account) (greenapi.InstanceState, error) {
	var (
		state greenapi.InstanceState
		code  int
	)
	err := gout.GET(methodURL(acc.APIURL, acc, "getStateInstance")).
		WithContext(ctx).
		SetTimeout(c.timeout).
		BindJSON(&state).
		Code(&code).
		Do()
	if err != nil {
		return greenapi.InstanceState{}, fmt.Errorf("getStateInstance request failed: %w", err)
	}
	if code != http.StatusOK {
		return greenapi.InstanceState{}, fmt.Errorf("getStateInstance returned status %d", code)
	}
	return state, nil
}

func methodURL(base string, acc greenapi.Account, method string) string {
	return fmt.Sprintf("%s/waInstance%s/%s/%s", base, acc.InstanceID, method, acc.Token)
}
