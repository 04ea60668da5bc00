package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/errs"
)

func TestResendMailer(t *testing.T) {
	var got ResendEmailRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer server.Close()

	mailer, err := NewResendMailer("re_test", "Portfolio <site@example.com>")
	require.NoError(t, err)
	mailer.endpoint = server.URL

	err = mailer.Send(context.Background(), "Hello", "plain body", []string{"owner@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "Portfolio <site@example.com>", got.From)
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "plain body", got.Text)
}

func TestResendMailerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	mailer, err := NewResendMailer("re_test", "bad")
	require.NoError(t, err)
	mailer.endpoint = server.URL

	err = mailer.Send(context.Background(), "Hello", "body", []string{"owner@example.com"})
	require.Error(t, err)
	assert.True(t, errs.IsEmailTransportError(err))
	assert.Contains(t, err.Error(), "invalid from address")
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MailConfig
		want    interface{}
		wantErr bool
	}{
		{name: "none", cfg: config.MailConfig{Transport: "none"}, want: NopMailer{}},
		{name: "resend", cfg: config.MailConfig{Transport: "resend", ResendAPIKey: "k", ResendFromEmail: "a@b.c"}, want: &ResendMailer{}},
		{name: "resend without key", cfg: config.MailConfig{Transport: "resend"}, wantErr: true},
		{name: "smtp", cfg: config.MailConfig{Transport: "smtp", SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPFrom: "a@b.c"}, want: &SMTPMailer{}},
		{name: "smtp without host", cfg: config.MailConfig{Transport: "smtp"}, wantErr: true},
		{name: "unknown", cfg: config.MailConfig{Transport: "pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer, err := NewMailer(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, mailer)
		})
	}
}

func TestNotifierWithoutRecipientSkips(t *testing.T) {
	n := NewNotifier(mailerFunc(func() error {
		t.Fatal("mailer should not be called")
		return nil
	}), "")
	assert.NoError(t, n.NewsletterSignup(context.Background(), "reader@example.com"))
}

type mailerFunc func() error

func (f mailerFunc) Send(context.Context, string, string, []string) error { return f() }
