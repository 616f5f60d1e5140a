package utils

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// ResponseHandler provides standardized response methods for commands
type ResponseHandler struct{}

var EH = &ResponseHandler{}

type ErrorType int

const (
	// UserError - bad input, unknown ids, duplicate entries
	UserError ErrorType = iota
	// SystemError - database or store API failures
	SystemError
	NotFoundError
	PermissionError
	// BusinessLogicError - schedule conflicts and similar state violations
	BusinessLogicError
)

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case NotFoundError:
		return "🔍"
	case PermissionError:
		return "🚫"
	case BusinessLogicError:
		return "⏰"
	default:
		return "❌"
	}
}

func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError, BusinessLogicError:
		return WarningColor
	case NotFoundError:
		return InfoColor
	default:
		return ErrorColor
	}
}

// ErrorEmbed builds the embed used for every classified error.
func ErrorEmbed(errorType ErrorType, message string) discord.Embed {
	return discord.Embed{
		Description: getErrorPrefix(errorType) + " " + message,
		Color:       getErrorColor(errorType),
	}
}

func SuccessEmbed(message string) discord.Embed {
	return discord.Embed{Description: "✅ " + message, Color: SuccessColor}
}

// CreateClassifiedError responds ephemerally with a classified error embed.
func (h *ResponseHandler) CreateClassifiedError(event *handler.CommandEvent, errorType ErrorType, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{ErrorEmbed(errorType, message)},
		Flags:  discord.MessageFlagEphemeral,
	})
}

func (h *ResponseHandler) CreateUserError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, UserError, message)
}

func (h *ResponseHandler) CreateSystemError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, SystemError, message)
}

func (h *ResponseHandler) CreateNotFoundError(event *handler.CommandEvent, resource, identifier string) error {
	return h.CreateClassifiedError(event, NotFoundError, fmt.Sprintf("%s `%s` not found", resource, identifier))
}

func (h *ResponseHandler) CreatePermissionError(event *handler.CommandEvent, action string) error {
	return h.CreateClassifiedError(event, PermissionError, fmt.Sprintf("You don't have permission to %s", action))
}

func (h *ResponseHandler) CreateBusinessLogicError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, BusinessLogicError, message)
}

// CreateEphemeralSuccess responds with a success embed only the caller sees.
func (h *ResponseHandler) CreateEphemeralSuccess(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{SuccessEmbed(message)},
		Flags:  discord.MessageFlagEphemeral,
	})
}

// CreateEphemeralContent responds with plain ephemeral text.
func (h *ResponseHandler) CreateEphemeralContent(event *handler.CommandEvent, content string) error {
	return event.CreateMessage(discord.MessageCreate{
		Content: content,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// UpdateContent replaces a deferred response with content.
func (h *ResponseHandler) UpdateContent(event *handler.CommandEvent, content string) error {
	_, err := event.UpdateInteractionResponse(discord.MessageUpdate{Content: &content})
	return err
}

// UpdateError replaces a deferred response with a classified error embed.
func (h *ResponseHandler) UpdateError(event *handler.CommandEvent, errorType ErrorType, message string) error {
	_, err := event.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{ErrorEmbed(errorType, message)},
	})
	return err
}
