package models

import "encoding/gob"

type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
	FlashInfo    FlashLevel = "info"
)

// Flash is a one-time status message queued on the session and shown on the next rendered page.
type Flash struct {
	Level   FlashLevel
	Message string
}

func init() {
	// session values are gob encoded by securecookie
	gob.Register(Flash{})
}
