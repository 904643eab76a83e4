// Package greenapi defines the contract to the Green API WhatsApp
// messaging endpoint.
package greenapi

import "context"

// Account identifies one Green API instance. It is derived from the
// persisted connection profile before every call, so profile edits apply
// to the next operation without a restart.
type Account struct {
	APIURL     string
	MediaURL   string
	InstanceID string
	Token      string
}

// SendResult is the acceptance receipt of a send. A send counts as
// successful only when IDMessage is non-empty.
type SendResult struct {
	IDMessage string `json:"idMessage"`
}

func (r SendResult) Accepted() bool {
	return r.IDMessage != ""
}

// InstanceState is the response of getStateInstance.
type InstanceState struct {
	StateInstance string `json:"stateInstance"`
	WID           string `json:"wid"`
	Name          string `json:"name"`
}

// Ready reports whether the instance can send messages.
func (s InstanceState) Ready() bool {
	return s.StateInstance == "authorized" || s.StateInstance == "online"
}

type Client interface {
	SendMessage(ctx context.Context, acc Account, chatID, message string) (SendResult, error)
	SendFileByUpload(ctx context.Context, acc Account, chatID, filePath, caption string) (SendResult, error)
	GetStateInstance(ctx context.Context, acc Account) (InstanceState, error)
}
