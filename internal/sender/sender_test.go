package sender

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/ignite/email-domain-filter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("ses-123")}, nil
}

func testMessage() *domain.EmailMessage {
	return &domain.EmailMessage{
		ID:        "n-1",
		Event:     domain.EventCustomerInvoice,
		To:        []string{"a@good.test", "b@good.test"},
		FromName:  "Shop",
		FromEmail: "shop@shop.test",
		Subject:   "Invoice",
		HTMLBody:  "<p>hi</p>",
	}
}

func TestSESSender_Send(t *testing.T) {
	fake := &fakeSES{}
	s := NewSESSenderWithClient(fake, "transactional")

	res, err := s.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "ses-123", res.MessageID)
	assert.Equal(t, "ses", res.Sender)

	require.NotNil(t, fake.input)
	assert.Equal(t, "Shop <shop@shop.test>", aws.ToString(fake.input.FromEmailAddress))
	assert.Equal(t, []string{"a@good.test", "b@good.test"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "transactional", aws.ToString(fake.input.ConfigurationSetName))
	assert.Equal(t, "Invoice", aws.ToString(fake.input.Content.Simple.Subject.Data))
	assert.Nil(t, fake.input.Content.Simple.Body.Text)
}

func TestSESSender_Errors(t *testing.T) {
	boom := errors.New("MessageRejected")
	s := NewSESSenderWithClient(&fakeSES{err: boom}, "")

	_, err := s.Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, boom)

	msg := testMessage()
	msg.To = nil
	_, err = s.Send(context.Background(), msg)
	assert.ErrorIs(t, err, ErrNoRecipients)

	_, err = NewSESSenderWithClient(nil, "").Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLogSender_Send(t *testing.T) {
	res, err := NewLogSender().Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "log-n-1", res.MessageID)

	msg := testMessage()
	msg.To = nil
	_, err = NewLogSender().Send(context.Background(), msg)
	assert.ErrorIs(t, err, ErrNoRecipients)
}
