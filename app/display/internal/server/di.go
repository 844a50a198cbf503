package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/founder_radar/app/display/internal/data"
	"github.com/iWorld-y/founder_radar/app/display/internal/service"
	"github.com/iWorld-y/founder_radar/app/display/internal/usecase"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/engine"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewInsightEngine,
	wire.Bind(new(usecase.ChatEngine), new(*engine.Engine)),

	// Data providers
	data.NewData,
	data.NewStateStore,
	data.NewUserRepo,
	data.NewArchiveRepo,

	// UseCase providers
	usecase.NewUserUseCase,
	usecase.NewInsightUseCase,
	usecase.NewChatUseCase,

	// Service providers
	service.NewFounderService,
)
