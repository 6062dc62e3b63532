package domain

import "time"

type UserID uint64

type SourceID int

type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceTouch   Device = "touch"
)

// Visit representa uma sessão registrada no log do servidor
type Visit struct {
	UserID   UserID    `json:"uid"`
	Device   Device    `json:"device"`
	StartTs  time.Time `json:"start_ts"`
	EndTs    time.Time `json:"end_ts"`
	SourceID SourceID  `json:"source_id"`
}
