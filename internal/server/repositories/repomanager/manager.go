package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mcpclient/internal/dbx"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/audit"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/records"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Audit(db dbx.DBTX) audit.Repository
	Records(db dbx.DBTX) records.Repository
}
