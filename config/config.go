package config

import (
	"github.com/datastax/sql-datatables/log"
)

type Config interface {
	Naming() NamingConvention
	Logger() log.Logger
}
