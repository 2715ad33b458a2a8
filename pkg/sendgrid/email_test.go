package sendgrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendprints/storefront/pkg/sendgrid"
)

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Cc      []map[string]string `json:"cc,omitempty"`
		Bcc     []map[string]string `json:"bcc,omitempty"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestNewEmailService(t *testing.T) {
	assert.NotNil(t, sendgrid.NewEmailService("test-api-key", "orders@trendprints.com", "TrendPrints"))
}

func TestEmailService_Send(t *testing.T) {
	apiKey := "SG.test-api-key"
	fromEmail := "orders@trendprints.com"
	fromName := "TrendPrints"

	tests := []struct {
		name          string
		msg           *sendgrid.Message
		status        int
		expectedError string
		checkPayload  func(t *testing.T, payload sendgridV3Payload)
	}{
		{
			name: "Success - Order confirmation",
			msg: &sendgrid.Message{
				To:          "naruto@example.com",
				ToName:      "naruto",
				Subject:     "Your TrendPrints order",
				Content:     "Thanks for your order",
				HTMLContent: "<p>Thanks for your order</p>",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				pers := p.Personalizations[0]
				require.Len(t, pers.To, 1)
				assert.Equal(t, "naruto@example.com", pers.To[0]["email"])
				assert.Equal(t, "naruto", pers.To[0]["name"])
				assert.Equal(t, "Your TrendPrints order", pers.Subject)
				assert.Equal(t, fromEmail, p.From["email"])
				assert.Equal(t, fromName, p.From["name"])
				require.Len(t, p.Content, 2)
				assert.Equal(t, "text/plain", p.Content[0].Type)
				assert.Equal(t, "text/html", p.Content[1].Type)
			},
		},
		{
			name: "Success - Plain text with CC and BCC",
			msg: &sendgrid.Message{
				To:      "sakura@example.com",
				CC:      []string{"ops@trendprints.com"},
				BCC:     []string{"audit@trendprints.com"},
				Subject: "Order shipped",
				Content: "On its way",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				pers := p.Personalizations[0]
				require.Len(t, pers.Cc, 1)
				assert.Equal(t, "ops@trendprints.com", pers.Cc[0]["email"])
				require.Len(t, pers.Bcc, 1)
				assert.Equal(t, "audit@trendprints.com", pers.Bcc[0]["email"])
				require.Len(t, p.Content, 1)
				assert.Equal(t, "On its way", p.Content[0].Value)
			},
		},
		{
			name:          "Failure - SendGrid API Error (4xx)",
			msg:           &sendgrid.Message{To: "bad@example.com", Subject: "s", Content: "c"},
			status:        http.StatusBadRequest,
			expectedError: "failed to send email, status code: 400",
		},
		{
			name:          "Failure - SendGrid API Error (5xx)",
			msg:           &sendgrid.Message{To: "naruto@example.com", Subject: "s", Content: "c"},
			status:        http.StatusInternalServerError,
			expectedError: "failed to send email, status code: 500",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var payload sendgridV3Payload

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))

				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.NoError(t, json.Unmarshal(body, &payload))

				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			svc := sendgrid.NewEmailService(apiKey, fromEmail, fromName)
			svc.GetSendGridClient().Request.BaseURL = server.URL

			// Act
			err := svc.Send(t.Context(), tc.msg)

			// Assert
			if tc.expectedError == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
			}

			if tc.checkPayload != nil {
				tc.checkPayload(t, payload)
			}
		})
	}

	t.Run("Failure - Network Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		svc := sendgrid.NewEmailService(apiKey, fromEmail, fromName)
		svc.GetSendGridClient().Request.BaseURL = server.URL
		server.Close()

		err := svc.Send(t.Context(), &sendgrid.Message{To: "naruto@example.com", Subject: "s", Content: "c"})

		assert.Error(t, err)
	})
}
