package twilio_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SriniGundelli/ava-hackathon/internal/twilio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccountSID = "AC00000000000000000000000000000000"
	testAuthToken  = "auth-token"
)

func requireBasicAuth(t *testing.T, r *http.Request) {
	t.Helper()
	user, pass, ok := r.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, testAccountSID, user)
	assert.Equal(t, testAuthToken, pass)
}

func TestCreateTrunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBasicAuth(t, r)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Trunks", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Ava AI Recruiting", r.PostForm.Get("FriendlyName"))
		assert.Equal(t, "ava-ai-recruiting.sip.twilio.com", r.PostForm.Get("DomainName"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"TK123","friendly_name":"Ava AI Recruiting","domain_name":"ava-ai-recruiting.sip.twilio.com"}`))
	}))
	defer srv.Close()

	client := twilio.NewClientWithBaseURLs(testAccountSID, testAuthToken, srv.URL, srv.URL)
	trunk, err := client.CreateTrunk(context.Background(), "Ava AI Recruiting", "ava-ai-recruiting.sip.twilio.com")

	require.NoError(t, err)
	assert.Equal(t, "TK123", trunk.SID)
}

func TestCreateOriginationURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBasicAuth(t, r)
		assert.Equal(t, "/Trunks/TK123/OriginationUrls", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ElevenLabs Voice Handler", r.PostForm.Get("FriendlyName"))
		assert.Equal(t, "sip:myagent.sip.11.ai", r.PostForm.Get("SipUrl"))
		assert.Equal(t, "10", r.PostForm.Get("Priority"))
		assert.Equal(t, "10", r.PostForm.Get("Weight"))
		assert.Equal(t, "true", r.PostForm.Get("Enabled"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"OU123"}`))
	}))
	defer srv.Close()

	client := twilio.NewClientWithBaseURLs(testAccountSID, testAuthToken, srv.URL, srv.URL)
	err := client.CreateOriginationURL(context.Background(), "TK123", &twilio.OriginationURLParams{
		FriendlyName: "ElevenLabs Voice Handler",
		SipURL:       "sip:myagent.sip.11.ai",
		Priority:     10,
		Weight:       10,
		Enabled:      true,
	})

	require.NoError(t, err)
}

func TestSearchAvailableNumbers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBasicAuth(t, r)
		assert.Equal(t, "/Accounts/"+testAccountSID+"/AvailablePhoneNumbers/US/Local.json", r.URL.Path)
		assert.Equal(t, "415", r.URL.Query().Get("AreaCode"))
		assert.Equal(t, "1", r.URL.Query().Get("PageSize"))

		w.Write([]byte(`{"available_phone_numbers":[{"phone_number":"+14155550100","friendly_name":"(415) 555-0100"}]}`))
	}))
	defer srv.Close()

	client := twilio.NewClientWithBaseURLs(testAccountSID, testAuthToken, srv.URL, srv.URL)
	numbers, err := client.SearchAvailableNumbers(context.Background(), "415", 1)

	require.NoError(t, err)
	require.Len(t, numbers, 1)
	assert.Equal(t, "+14155550100", numbers[0].PhoneNumber)
}

func TestSearchAvailableNumbers_NoAreaCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAreaCode := r.URL.Query()["AreaCode"]
		assert.False(t, hasAreaCode)

		w.Write([]byte(`{"available_phone_numbers":[]}`))
	}))
	defer srv.Close()

	client := twilio.NewClientWithBaseURLs(testAccountSID, testAuthToken, srv.URL, srv.URL)
	numbers, err := client.SearchAvailableNumbers(context.Background(), "", 1)

	require.NoError(t, err)
	assert.Empty(t, numbers)
}

func TestPurchaseNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBasicAuth(t, r)
		assert.Equal(t, "/Accounts/"+testAccountSID+"/IncomingPhoneNumbers.json", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+14155550100", r.PostForm.Get("PhoneNumber"))
		assert.Equal(t, "TK123", r.PostForm.Get("TrunkSid"))
		assert.Equal(t, "https://example.com/webhooks/voice", r.PostForm.Get("VoiceUrl"))
		assert.Equal(t, "POST", r.PostForm.Get("VoiceMethod"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"PN123","phone_number":"+14155550100"}`))
	}))
	defer srv.Close()

	client := twilio.NewClientWithBaseURLs(testAccountSID, testAuthToken, srv.URL, srv.URL)
	number, err := client.PurchaseNumber(context.Background(), &twilio.PurchaseParams{
		PhoneNumber: "+14155550100",
		TrunkSID:    "TK123",
		VoiceURL:    "https://example.com/webhooks/voice",
		VoiceMethod: "POST",
	})

	require.NoError(t, err)
	assert.Equal(t, "PN123", number.SID)
	assert.Equal(t, "+14155550100", number.PhoneNumber)
}

func TestPurchaseNumber_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"message":"insufficient funds"}`))
	}))
	defer srv.Close()

	client := twilio.NewClientWithBaseURLs(testAccountSID, testAuthToken, srv.URL, srv.URL)
	_, err := client.PurchaseNumber(context.Background(), &twilio.PurchaseParams{PhoneNumber: "+14155550100"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient funds")
}
