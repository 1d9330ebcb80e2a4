package mail

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/lovebomb-server/internal/mocks"
	"github.com/dtroode/lovebomb-server/internal/model"
	"github.com/dtroode/lovebomb-server/internal/testutil"
)

func testInvite() model.InviteEmail {
	return model.InviteEmail{
		To:           "bob@example.com",
		InviterEmail: "alice@example.com",
		AcceptURL:    "http://localhost:3000/invite/accept/tok",
		ExpiresAt:    time.Now().Add(model.DefaultInviteTTL),
	}
}

func TestSMTPMailer_BuildInvite(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{From: "noreply@example.com"})

	msg, err := m.buildInvite(testInvite())
	require.NoError(t, err)

	assert.Contains(t, msg, "From: LoveBomb <noreply@example.com>\r\n")
	assert.Contains(t, msg, "To: bob@example.com\r\n")
	assert.Contains(t, msg, "Subject: "+InviteSubject+"\r\n")
	assert.Contains(t, msg, `href="http://localhost:3000/invite/accept/tok"`)
	assert.Contains(t, msg, "alice@example.com has invited you")
	assert.Contains(t, msg, "expires on "+testInvite().ExpiresAt.UTC().Format("January 2, 2006"))
}

func TestSMTPMailer_BuildInviteEscapes(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{From: "noreply@example.com"})
	email := testInvite()
	email.InviterEmail = "<script>alert(1)</script>"

	msg, err := m.buildInvite(email)
	require.NoError(t, err)
	assert.False(t, strings.Contains(msg, "<script>"))
}

func TestSMTPMailer_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	require.NoError(t, ln.Close())

	m := NewSMTPMailer(SMTPConfig{Host: "127.0.0.1", Port: addr.Port, From: "noreply@example.com", Timeout: time.Second})

	err = m.SendInvite(context.Background(), testInvite())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to SMTP server")
}

func TestLogMailer_SendInvite(t *testing.T) {
	m := NewLogMailer(testutil.MakeNoopLogger())
	assert.NoError(t, m.SendInvite(context.Background(), testInvite()))
}

func TestBreakerMailer_OpensAfterFailures(t *testing.T) {
	next := mocks.NewMailer(t)
	next.On("SendInvite", mock.Anything, mock.Anything).Return(errors.New("relay down")).Times(2)

	m := NewBreakerMailer(next, BreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute}, testutil.MakeNoopLogger())

	for i := 0; i < 2; i++ {
		err := m.SendInvite(context.Background(), testInvite())
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, m.State())

	err := m.SendInvite(context.Background(), testInvite())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestBreakerMailer_PassesThrough(t *testing.T) {
	next := mocks.NewMailer(t)
	next.On("SendInvite", mock.Anything, mock.AnythingOfType("model.InviteEmail")).Return(nil).Once()

	m := NewBreakerMailer(next, BreakerConfig{}, testutil.MakeNoopLogger())

	assert.NoError(t, m.SendInvite(context.Background(), testInvite()))
	assert.Equal(t, gobreaker.StateClosed, m.State())
}
