package apistub

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const (
	jwtPrefix   = "Bearer "
	ctxUsername = "username"
	issuerName  = "pantry-api"

	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

// Claims carried by both access and refresh tokens
type Claims struct {
	jwt.StandardClaims
	Username  string `json:"username"`
	TokenType string `json:"type"`
}

type tokenMaker struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func (t tokenMaker) issue(username, kind string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    issuerName,
			Subject:   username,
		},
		Username:  username,
		TokenType: kind,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t tokenMaker) pair(username string) (access, refresh string, err error) {
	if access, err = t.issue(username, tokenAccess, t.accessTTL); err != nil {
		return "", "", err
	}
	if refresh, err = t.issue(username, tokenRefresh, t.refreshTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t tokenMaker) validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrInvalidKey
}

// requireAccessToken rejects requests without a valid access token and puts
// the username in the context
func (s *Server) requireAccessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, jwtPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing Authorization Header"})
			return
		}

		claims, err := s.tokens.validate(strings.TrimPrefix(header, jwtPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		if claims.TokenType != tokenAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Only access tokens are allowed"})
			return
		}

		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}
