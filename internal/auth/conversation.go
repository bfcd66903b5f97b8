// Package auth holds the HTTP middleware that identifies and throttles
// clients: the conversation cookie and the per-IP rate limiter.
package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"CivilBot/internal/history"
)

const (
	CookieName  = "conversation_token"
	claimConvID = "conversation_id"
	tokenTTL    = 30 * 24 * time.Hour
)

type contextKey string

const conversationKey contextKey = "conversationID"

// Conversations issues and verifies the signed cookie that carries a
// client's conversation id.
type Conversations struct {
	Key []byte
	// Secure marks the cookie HTTPS only.
	Secure bool
}

// Middleware puts the caller's conversation id in the request context,
// starting a new conversation when the cookie is missing or invalid.
func (c *Conversations) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(CookieName); err == nil {
			id, err = c.Parse(cookie.Value)
			if err != nil {
				log.Printf("conversation token rejected: %v", err)
			}
		}
		if id == "" {
			id = history.NewConversationID()
			if err := c.setCookie(w, id); err != nil {
				log.Printf("issue conversation token: %v", err)
			}
		}
		next.ServeHTTP(w, r.WithContext(WithConversationID(r.Context(), id)))
	})
}

// Issue signs a token for conversation id.
func (c *Conversations) Issue(id string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimConvID: id,
		"exp":       time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(c.Key)
}

// Parse verifies tokenString and returns its conversation id.
func (c *Conversations) Parse(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.Key, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	id, ok := claims[claimConvID].(string)
	if !ok || id == "" {
		return "", errors.New("token has no conversation id")
	}
	return id, nil
}

func (c *Conversations) setCookie(w http.ResponseWriter, id string) error {
	tokenString, err := c.Issue(id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Expires:  time.Now().Add(tokenTTL),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func WithConversationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, conversationKey, id)
}

// ConversationID returns the id set by Middleware, or "".
func ConversationID(ctx context.Context) string {
	id, _ := ctx.Value(conversationKey).(string)
	return id
}
