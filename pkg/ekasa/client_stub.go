package ekasa

import (
	"context"
	"sync"
)

type ClientStub struct {
	mu       sync.RWMutex
	receipts map[string]*ReceiptPayload
	fetchErr error
}

func NewClientStub() *ClientStub {
	return &ClientStub{receipts: make(map[string]*ReceiptPayload)}
}

func (s *ClientStub) FetchReceipt(ctx context.Context, receiptId string) (*ReceiptPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if !ValidateOPD(receiptId) {
		return nil, ErrInvalidOPD
	}
	payload, ok := s.receipts[receiptId]
	if !ok {
		return nil, ErrReceiptNotFound
	}
	return payload, nil
}

func (s *ClientStub) AddReceipt(payload *ReceiptPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[payload.ReceiptId] = payload
}

func (s *ClientStub) SetFetchError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchErr = err
}

func (s *ClientStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = make(map[string]*ReceiptPayload)
	s.fetchErr = nil
}
