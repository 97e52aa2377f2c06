package calcom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.cal.com/v2"

type (
	// Slot is an available time window reported by Cal.com.
	Slot struct {
		Time       string `json:"time"`
		Attendees  int    `json:"attendees"`
		BookingUID string `json:"bookingUid"`
	}

	Attendee struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		TimeZone string `json:"timeZone"`
	}

	BookingRequest struct {
		Start       string            `json:"start"`
		EventTypeID int               `json:"eventTypeId"`
		Attendee    Attendee          `json:"attendee"`
		Metadata    map[string]string `json:"metadata"`
	}

	Booking struct {
		UID        string `json:"uid"`
		MeetingURL string `json:"meetingUrl"`
	}

	Client interface {
		AvailableSlots(ctx context.Context) ([]Slot, error)
		CreateBooking(ctx context.Context, req *BookingRequest) (*Booking, error)
	}

	client struct {
		apiKey     string
		baseURL    string
		httpClient *http.Client
	}
)

func (cc *client) AvailableSlots(ctx context.Context) ([]Slot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cc.baseURL+"/slots/available", nil)
	if err != nil {
		return nil, err
	}
	cc.setHeaders(req)

	resp, err := cc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Cal.com API error: %d", resp.StatusCode)
	}

	var body struct {
		Slots []Slot `json:"slots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Slots, nil
}

func (cc *client) CreateBooking(ctx context.Context, bookingReq *BookingRequest) (*Booking, error) {
	payload, err := json.Marshal(bookingReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.baseURL+"/bookings", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	cc.setHeaders(req)

	resp, err := cc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Booking failed: %s", string(errBody))
	}

	var booking Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (cc *client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+cc.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

func NewClient(apiKey string) Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

func NewClientWithBaseURL(apiKey, baseURL string) Client {
	return &client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}
