package models

import "time"

type RefreshToken struct {
	Username string
	Token    string
	Expires  time.Time
}
