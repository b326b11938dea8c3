package message

import appErrors "sankofa/pkg/errors"

var (
	ErrMessageNotFound   = appErrors.NotFound("MESSAGE_NOT_FOUND", "message not found")
	ErrNotParticipant    = appErrors.Forbidden("NOT_PARTICIPANT", "you are not a participant of this message")
	ErrCannotMessageSelf = appErrors.NewAppError("SELF_MESSAGE", "cannot send a message to yourself", nil)
)
