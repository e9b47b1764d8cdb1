package main

import (
	"context"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jingkaihe/hrskills/pkg/session"
)

// storeFlags selects the session store, falling back to the session.* config keys
type storeFlags struct {
	StoreType string
	DBPath    string
}

func addStoreFlags(flags *pflag.FlagSet) {
	flags.String("store", "", "Session store type (sqlite or memory)")
	flags.String("db-path", "", "Path of the SQLite session database")
}

func getStoreFlags(flags *pflag.FlagSet) storeFlags {
	var f storeFlags
	f.StoreType, _ = flags.GetString("store")
	f.DBPath, _ = flags.GetString("db-path")
	return f
}

func (f storeFlags) config() session.Config {
	config := session.Config{
		StoreType: viper.GetString("session.store"),
		DBPath:    viper.GetString("session.db_path"),
	}
	if f.StoreType != "" {
		config.StoreType = f.StoreType
	}
	if f.DBPath != "" {
		config.DBPath = f.DBPath
	}
	return config
}

func (f storeFlags) open(ctx context.Context) (session.Store, error) {
	return session.NewStore(ctx, f.config())
}
