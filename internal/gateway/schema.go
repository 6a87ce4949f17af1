package gateway

// registerRequest は POST /register の受信ボディ。
// フィールド単位の詳細な検証は下流のidentity providerが担うため、
// ここでは形式的なチェックのみ行う。
type registerRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string `json:"last_name" binding:"required,min=2,max=50"`
	UserName  string `json:"user_name" binding:"required,min=3,max=30"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=10"`
}

// loginRequest は POST /login の受信ボディ。
type loginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// passwordRequest はパスワード確認を要する操作（ユーザー削除）の受信ボディ。
type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

// changePasswordRequest はパスワード変更の受信ボディ。
type changePasswordRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=10"`
}

// userUpdatesRequest は PATCH /users/{user_id} の受信ボディ。
// 部分更新のため全フィールドが任意で、指定されたものだけを転送する。
type userUpdatesRequest struct {
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,min=2,max=50"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,min=2,max=50"`
	UserName  *string `json:"user_name,omitempty" binding:"omitempty,min=3,max=30"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
}

// productRequest は product作成・更新の受信ボディ。
type productRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	ComponentIDs []string `json:"component_ids" binding:"required"`
}

// favoriteItemRequest はお気に入りの追加・削除対象を示す受信ボディ。
type favoriteItemRequest struct {
	ID       string `json:"id" binding:"required"`
	ItemType string `json:"itemType" binding:"required,oneof=component product"`
}

// authResponse は identity providerが登録・ログイン成功時に返すボディのうち、
// ゲートウェイが参照するフィールド。ボディ自体はそのまま呼び出し元へ返す。
type authResponse struct {
	Token string `json:"token"`
}
