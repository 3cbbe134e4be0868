package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPorts(t *testing.T) {
	chat := &mockChatService{}
	template := &mockTemplateService{}

	ports := NewPorts(chat, template, nil, nil)

	require.NotNil(t, ports)
	assert.Equal(t, chat, ports.Chat)
	assert.Equal(t, template, ports.Template)
	assert.Nil(t, ports.Upload)
	assert.Nil(t, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	t.Run("missing chat service", func(t *testing.T) {
		ports := &Ports{Template: &mockTemplateService{}}

		err := ports.Validate()

		assert.ErrorIs(t, err, ErrMissingChatService)
	})

	t.Run("missing template service", func(t *testing.T) {
		ports := &Ports{Chat: &mockChatService{}}

		err := ports.Validate()

		assert.ErrorIs(t, err, ErrMissingTemplateService)
	})

	t.Run("valid without optional ports", func(t *testing.T) {
		ports := &Ports{
			Chat:     &mockChatService{},
			Template: &mockTemplateService{},
		}

		assert.NoError(t, ports.Validate())
	})
}
