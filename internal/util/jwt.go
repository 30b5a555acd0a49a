package util

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextStudentKey 中间件写入 gin.Context 的键
const ContextStudentKey = "student"

// Claims are issued by the external auth service; the subject is the student id.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// StudentID returns the subject of the token.
func (c *Claims) StudentID() string {
	return c.Subject
}

func GenerateJWT(studentID, secret string, expiration time.Duration) (string, error) {
	claims := &Claims{
		Role: "student",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   studentID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.Subject == "" {
			return nil, ErrMissingStudent
		}
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

func GetStudentFromContext(c *gin.Context) *Claims {
	v, exists := c.Get(ContextStudentKey)
	if !exists {
		return nil
	}
	claims, ok := v.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
