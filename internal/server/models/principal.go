package models

import "github.com/dmitrijs2005/mcpclient/internal/common"

// Principal is the authenticated caller of an RPC.
type Principal struct {
	Username string
	Role     string
}

func (p Principal) IsAdmin() bool {
	return p.Role == common.RoleAdmin
}
