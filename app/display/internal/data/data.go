package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/founder_radar/app/display/internal/conf"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/engine"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/storage"
)

type Data struct {
	store *storage.Storage
}

// NewData 打开数据库，未配置时使用内存 sqlite
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	driver, source := storage.DriverSQLite, ":memory:"
	if c != nil && c.Database != nil && c.Database.Driver != "" {
		driver, source = c.Database.Driver, c.Database.Source
	}

	store, err := storage.Open(context.Background(), driver, source)
	if err != nil {
		return nil, nil, err
	}
	log.NewHelper(logger).Infof("database ready driver=%s", store.Driver())

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		store.Close()
	}
	return &Data{store: store}, cleanup, nil
}

// NewStateStore 仪表盘状态持久化到数据库
func NewStateStore(d *Data) engine.StateStore {
	return d.store
}
