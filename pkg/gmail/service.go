package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// TokenUpdateFunc is invoked when the OAuth token source refreshes the
// user's access token, so the caller can persist the new token.
type TokenUpdateFunc func(*oauth2.Token) error

// Service sends mail through the Gmail API using the user's own OAuth
// credentials, so shared summaries come from the user's mailbox.
type Service struct {
	clientID     string
	clientSecret string
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			return nil, fmt.Errorf("persist refreshed token: %w", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (s *Service) gmailService(ctx context.Context, accessToken, refreshToken string, onTokenRefresh TokenUpdateFunc) (*gmail.Service, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	// Only force a refresh if we actually hold a refresh token.
	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	cfg := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	wrapped := &notifyTokenSource{
		src:      cfg.TokenSource(ctx, token),
		current:  token,
		callback: onTokenRefresh,
	}

	client := oauth2.NewClient(ctx, wrapped)

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return srv, nil
}

// SendSummary sends a plain-text summary email from the user's mailbox.
func (s *Service) SendSummary(ctx context.Context, accessToken, refreshToken, fromEmail, to, subject, body string, onTokenRefresh TokenUpdateFunc) error {
	srv, err := s.gmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return err
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", fromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	// Encode subject to handle non-ASCII characters (RFC 2047)
	encodedSubject := fmt.Sprintf("=?utf-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(subject)))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", encodedSubject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(body)

	_, err = srv.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(msg.Bytes()),
	}).Do()
	if err != nil {
		return fmt.Errorf("unable to send message: %w", err)
	}
	return nil
}
