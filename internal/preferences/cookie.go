package preferences

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	CookieName   = "rd_prefs"
	cookieMaxAge = 365 * 24 * time.Hour
)

type cookieClaims struct {
	Values map[Key]string `json:"v"`
	jwt.RegisteredClaims
}

// cookieStorage keeps every preference in one HS256-signed cookie. A missing, expired or
// forged cookie reads as empty storage.
type cookieStorage struct {
	writer http.ResponseWriter
	secret []byte
	secure bool
	values map[Key]string
}

func NewCookieStorage(w http.ResponseWriter, r *http.Request, secret []byte) *cookieStorage {
	storage := &cookieStorage{
		writer: w,
		secret: secret,
		secure: r.TLS != nil,
		values: map[Key]string{},
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		if values, err := storage.parse(cookie.Value); err == nil {
			storage.values = values
		}
	}

	return storage
}

func (c *cookieStorage) parse(token string) (map[Key]string, error) {
	claims := &cookieClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims.Values == nil {
		return map[Key]string{}, nil
	}

	return claims.Values, nil
}

func (c *cookieStorage) Get(_ context.Context, key Key) (string, bool, error) {
	value, ok := c.values[key]
	return value, ok, nil
}

func (c *cookieStorage) Set(_ context.Context, key Key, value string) error {
	c.values[key] = value

	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cookieClaims{
		Values: c.values,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cookieMaxAge)),
		},
	}).SignedString(c.secret)
	if err != nil {
		return err
	}

	http.SetCookie(c.writer, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}
