package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// BootstrapAdminUseCase 启动时确保管理员存在
// 在开始监听之前执行一次，重复执行不会修改已有账号
type BootstrapAdminUseCase struct {
	userService user.Service
	log         *zap.Logger
}

// NewBootstrapAdminUseCase 创建引导用例
func NewBootstrapAdminUseCase(userService user.Service, log *zap.Logger) *BootstrapAdminUseCase {
	return &BootstrapAdminUseCase{userService: userService, log: log}
}

// Execute 确保管理员账号存在
func (uc *BootstrapAdminUseCase) Execute(ctx context.Context, username, password string) error {
	created, err := uc.userService.EnsureAdmin(ctx, username, password)
	if err != nil {
		return err
	}
	if created {
		uc.log.Info("已创建默认管理员", zap.String("username", username))
	} else {
		uc.log.Debug("管理员已存在", zap.String("username", username))
	}
	return nil
}
