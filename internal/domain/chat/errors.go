package chat

import "errors"

// ErrNotFound indicates the referenced conversation does not exist.
var ErrNotFound = errors.New("conversation not found")

// ErrEmptyMessage indicates a send with no content after trimming; the
// controller treats it as a no-op.
var ErrEmptyMessage = errors.New("message is empty")

// ErrBusy indicates the conversation already has a send in flight. Only one
// outstanding send is permitted per conversation.
var ErrBusy = errors.New("conversation has a send in flight")
