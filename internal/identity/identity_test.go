package identity

import (
	"context"
	"testing"
)

func TestUserFrom(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ctx := WithUser(context.Background(), User{UID: "abc", Email: "a@b.c"})
		u, ok := UserFrom(ctx)
		if !ok {
			t.Fatal("UserFrom = false, want true")
		}
		if u.UID != "abc" || u.Email != "a@b.c" {
			t.Errorf("user = %+v", u)
		}
	})

	t.Run("absent", func(t *testing.T) {
		if _, ok := UserFrom(context.Background()); ok {
			t.Error("UserFrom on empty context = true")
		}
	})

	t.Run("empty uid rejected", func(t *testing.T) {
		ctx := WithUser(context.Background(), User{Email: "a@b.c"})
		if _, ok := UserFrom(ctx); ok {
			t.Error("UserFrom with empty uid = true")
		}
	})
}
