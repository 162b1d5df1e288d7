package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by every bearer token.
//
// Standard claims (iss, sub, exp, iat, jti) are embedded; Login and IsAdmin
// let the auth middleware build an [Actor] without a database round trip.
type TokenClaims struct {
	jwt.RegisteredClaims

	Login   string `json:"login"`
	IsAdmin bool   `json:"admin"`
}

// Token is a signed bearer token together with the decoded claims needed by
// the transport layer.
type Token struct {
	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// ID is the "jti" claim. Logout revokes tokens by this value.
	ID string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`

	Login   string `json:"-"`
	IsAdmin bool   `json:"-"`

	// ExpiresAt is the "exp" claim.
	ExpiresAt time.Time `json:"-"`
}

// NewTokenFromClaims builds a [Token] from parsed claims.
//
// Returns an error if the subject claim is missing or is not a base-10 int64.
func NewTokenFromClaims(signed string, claims *TokenClaims) (Token, error) {
	userIDString, err := claims.GetSubject()
	if err != nil {
		return Token{}, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	token := Token{
		SignedString: signed,
		ID:           claims.ID,
		UserID:       userID,
		Login:        claims.Login,
		IsAdmin:      claims.IsAdmin,
	}
	if claims.ExpiresAt != nil {
		token.ExpiresAt = claims.ExpiresAt.Time
	}

	return token, nil
}

// Actor returns the caller identity carried by the token.
func (t Token) Actor() Actor {
	return Actor{UserID: t.UserID, Login: t.Login, IsAdmin: t.IsAdmin}
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
