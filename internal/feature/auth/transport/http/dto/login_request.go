// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/loginエンドポイントのリクエストボディを表します。
// identifierにはユーザー名またはメールアドレスを指定します。
// 空欄チェックはユースケース側で行い、MalformedRequestとして扱います。
type LoginReq struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}
