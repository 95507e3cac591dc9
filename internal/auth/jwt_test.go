package auth

import (
	"errors"
	"testing"
	"time"
)

func TestMintAndParse(t *testing.T) {
	id := Identity{UserID: 42, Email: "rec@example.com", EmailVerified: true}
	pair, err := MintTokens(id, "secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}

	c, err := ParseAccess(pair.AccessToken, "secret")
	if err != nil {
		t.Fatalf("ParseAccess() error = %v", err)
	}
	if c.Identity() != id {
		t.Errorf("Identity() = %+v, want %+v", c.Identity(), id)
	}

	if _, err := ParseRefresh(pair.RefreshToken, "secret"); err != nil {
		t.Errorf("ParseRefresh() error = %v", err)
	}
}

func TestParse_Rejects(t *testing.T) {
	pair, err := MintTokens(Identity{UserID: 1, Email: "a@b.c"}, "secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}
	expired, err := MintTokens(Identity{UserID: 1}, "secret", -time.Minute, -time.Minute)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}

	tests := []struct {
		name  string
		parse func() error
		want  error
	}{
		{"wrong secret", func() error { _, err := ParseAccess(pair.AccessToken, "other"); return err }, nil},
		{"refresh as access", func() error { _, err := ParseAccess(pair.RefreshToken, "secret"); return err }, ErrWrongTokenType},
		{"access as refresh", func() error { _, err := ParseRefresh(pair.AccessToken, "secret"); return err }, ErrWrongTokenType},
		{"expired", func() error { _, err := ParseAccess(expired.AccessToken, "secret"); return err }, nil},
		{"garbage", func() error { _, err := ParseAccess("not-a-jwt", "secret"); return err }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
