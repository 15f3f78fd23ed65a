package ekasa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	ErrReceiptNotFound = errors.New("receipt not found in eKasa")
	ErrInvalidOPD      = errors.New("invalid OPD receipt identifier")
)

// ReceiptPayload is the subset of the eKasa find-receipt response we map into
// the local model.
type ReceiptPayload struct {
	ReceiptId    string               `json:"receiptId"`
	CreateDate   string               `json:"createDate"`
	IssueDate    string               `json:"issueDate"`
	TotalPrice   float64              `json:"totalPrice"`
	Organization PayloadOrganization  `json:"organization"`
	Items        []ReceiptPayloadItem `json:"items"`
}

type PayloadOrganization struct {
	Name string `json:"name"`
}

type ReceiptPayloadItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	VatRate  float64 `json:"vatRate"`
}

type findReceiptResponse struct {
	ReturnValue int             `json:"returnValue"`
	Receipt     *ReceiptPayload `json:"receipt"`
}

type Client interface {
	// FetchReceipt fetches a receipt by its OPD identifier. Returns
	// ErrReceiptNotFound when eKasa does not know the id.
	FetchReceipt(ctx context.Context, receiptId string) (*ReceiptPayload, error)
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *ClientImpl {
	return &ClientImpl{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ClientImpl) FetchReceipt(ctx context.Context, receiptId string) (*ReceiptPayload, error) {
	if !ValidateOPD(receiptId) {
		return nil, ErrInvalidOPD
	}

	body, err := json.Marshal(map[string]string{"receiptId": receiptId})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/receipt/find", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err := fmt.Errorf("could not reach eKasa: %w", err)
		log.Error(err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("eKasa returned status %d", resp.StatusCode)
		log.Error(err)
		return nil, err
	}

	var decoded findReceiptResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		err := fmt.Errorf("could not decode eKasa response: %w", err)
		log.Error(err)
		return nil, err
	}
	if decoded.ReturnValue != 0 || decoded.Receipt == nil {
		return nil, ErrReceiptNotFound
	}
	return decoded.Receipt, nil
}
