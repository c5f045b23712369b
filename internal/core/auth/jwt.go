package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims 会话令牌载荷：身份 + 角色（服务端不落库，过期即失效）
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"` // CLIENT / LAWYER / ADMIN
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration // 固定有效期，客户端无法指定
}

func (j *JWTer) Issue(uid, email, role, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:   uid,
		Email: email,
		Role:  role,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Parse 校验签名/过期/issuer，失败一律返回 (nil, err)，调用方按 nil 分支即可
func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer))

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// Refresh 滑动续期：旧 token 必须仍然有效，按原 claims 重新签发。
// 没有 refresh-token 轮换，失败语义与 Parse 完全一致。
func (j *JWTer) Refresh(tokenStr string) (string, error) {
	c, err := j.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	return j.Issue(c.UID, c.Email, c.Role, c.Name)
}
