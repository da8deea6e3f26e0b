package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func testPasswords() *PasswordService {
	return NewPasswordServiceWithCost(bcrypt.MinCost)
}

func TestHashVerify_RoundTrip(t *testing.T) {
	ps := testPasswords()
	hash, err := ps.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := ps.Verify(hash, "s3cret-pass"); err != nil {
		t.Errorf("verify: %v", err)
	}
}

func TestVerify_Mismatch(t *testing.T) {
	ps := testPasswords()
	hash, _ := ps.Hash("right-one")
	err := ps.Verify(hash, "wrong-one")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("want ErrPasswordMismatch, got %v", err)
	}
}

func TestHash_TooLong(t *testing.T) {
	ps := testPasswords()
	if _, err := ps.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("expected rejection of >72 byte password")
	}
}
