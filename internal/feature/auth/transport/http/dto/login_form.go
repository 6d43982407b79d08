package dto

// LoginForm はログインフォーム（POST /user/login）のリクエストボディを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}
