package auth

import (
	"context"

	"github.com/google/uuid"
)

type ctxkey string

const (
	userkey ctxkey = "autheduser"
)

type AuthedUser struct {
	OwnerID  uuid.UUID
	Username string
}

func StoreUserInContext(ctx context.Context, ownerID uuid.UUID, username string) context.Context {
	ctx = context.WithValue(ctx, userkey, &AuthedUser{
		OwnerID:  ownerID,
		Username: username,
	})
	return ctx
}

func UserFromContext(ctx context.Context) *AuthedUser {
	au, ok := ctx.Value(userkey).(*AuthedUser)
	if ok {
		return au
	}
	return nil
}
