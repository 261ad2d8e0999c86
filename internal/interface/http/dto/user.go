package dto

// RegisterRequest HTTP层注册请求
// 说明：字段规则由用户领域服务校验，返回统一的字段错误
type RegisterRequest struct {
	Username        string `json:"username" example:"alice"`
	Password        string `json:"password" example:"secret"`
	ConfirmPassword string `json:"confirmPassword" example:"secret"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}
