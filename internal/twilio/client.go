package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTrunkingBaseURL = "https://trunking.twilio.com/v1"
	defaultAPIBaseURL      = "https://api.twilio.com/2010-04-01"
)

type (
	// Trunk is a SIP trunk as returned by the trunking API.
	Trunk struct {
		SID          string `json:"sid"`
		FriendlyName string `json:"friendly_name"`
		DomainName   string `json:"domain_name"`
	}

	OriginationURLParams struct {
		FriendlyName string
		SipURL       string
		Priority     int
		Weight       int
		Enabled      bool
	}

	AvailableNumber struct {
		PhoneNumber  string `json:"phone_number"`
		FriendlyName string `json:"friendly_name"`
	}

	IncomingPhoneNumber struct {
		SID         string `json:"sid"`
		PhoneNumber string `json:"phone_number"`
	}

	PurchaseParams struct {
		PhoneNumber string
		TrunkSID    string
		VoiceURL    string
		VoiceMethod string
	}

	Client interface {
		CreateTrunk(ctx context.Context, friendlyName, domainName string) (*Trunk, error)
		CreateOriginationURL(ctx context.Context, trunkSID string, params *OriginationURLParams) error
		SearchAvailableNumbers(ctx context.Context, areaCode string, limit int) ([]AvailableNumber, error)
		PurchaseNumber(ctx context.Context, params *PurchaseParams) (*IncomingPhoneNumber, error)
	}

	client struct {
		accountSID      string
		authToken       string
		trunkingBaseURL string
		apiBaseURL      string
		httpClient      *http.Client
	}
)

func (tc *client) CreateTrunk(ctx context.Context, friendlyName, domainName string) (*Trunk, error) {
	form := url.Values{}
	form.Set("FriendlyName", friendlyName)
	form.Set("DomainName", domainName)

	var trunk Trunk
	if err := tc.postForm(ctx, tc.trunkingBaseURL+"/Trunks", form, &trunk); err != nil {
		return nil, fmt.Errorf("failed to create trunk: %w", err)
	}
	return &trunk, nil
}

func (tc *client) CreateOriginationURL(ctx context.Context, trunkSID string, params *OriginationURLParams) error {
	form := url.Values{}
	form.Set("FriendlyName", params.FriendlyName)
	form.Set("SipUrl", params.SipURL)
	form.Set("Priority", strconv.Itoa(params.Priority))
	form.Set("Weight", strconv.Itoa(params.Weight))
	form.Set("Enabled", strconv.FormatBool(params.Enabled))

	endpoint := fmt.Sprintf("%s/Trunks/%s/OriginationUrls", tc.trunkingBaseURL, trunkSID)
	if err := tc.postForm(ctx, endpoint, form, nil); err != nil {
		return fmt.Errorf("failed to create origination url: %w", err)
	}
	return nil
}

func (tc *client) SearchAvailableNumbers(ctx context.Context, areaCode string, limit int) ([]AvailableNumber, error) {
	query := url.Values{}
	query.Set("PageSize", strconv.Itoa(limit))
	if areaCode != "" {
		query.Set("AreaCode", areaCode)
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/AvailablePhoneNumbers/US/Local.json?%s",
		tc.apiBaseURL, tc.accountSID, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(tc.accountSID, tc.authToken)

	resp, err := tc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("available numbers lookup failed: %d %s", resp.StatusCode, string(errBody))
	}

	var body struct {
		AvailablePhoneNumbers []AvailableNumber `json:"available_phone_numbers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.AvailablePhoneNumbers, nil
}

func (tc *client) PurchaseNumber(ctx context.Context, params *PurchaseParams) (*IncomingPhoneNumber, error) {
	form := url.Values{}
	form.Set("PhoneNumber", params.PhoneNumber)
	form.Set("TrunkSid", params.TrunkSID)
	form.Set("VoiceUrl", params.VoiceURL)
	form.Set("VoiceMethod", params.VoiceMethod)

	endpoint := fmt.Sprintf("%s/Accounts/%s/IncomingPhoneNumbers.json", tc.apiBaseURL, tc.accountSID)

	var number IncomingPhoneNumber
	if err := tc.postForm(ctx, endpoint, form, &number); err != nil {
		return nil, fmt.Errorf("failed to purchase phone number: %w", err)
	}
	return &number, nil
}

func (tc *client) postForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(tc.accountSID, tc.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tc.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio API error: %d %s", resp.StatusCode, string(errBody))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func NewClient(accountSID, authToken string) Client {
	return &client{
		accountSID:      accountSID,
		authToken:       authToken,
		trunkingBaseURL: defaultTrunkingBaseURL,
		apiBaseURL:      defaultAPIBaseURL,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURLs exists for tests pointed at a local server.
func NewClientWithBaseURLs(accountSID, authToken, trunkingBaseURL, apiBaseURL string) Client {
	return &client{
		accountSID:      accountSID,
		authToken:       authToken,
		trunkingBaseURL: trunkingBaseURL,
		apiBaseURL:      apiBaseURL,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
	}
}
