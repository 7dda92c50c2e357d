package cli

import (
	"github.com/gdxsv/mcsalloc/client"
)

type Context struct {
	Config Config
	Client *client.Client
}
