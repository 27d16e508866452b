package token

import (
	"strings"
	"testing"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	encoded, err := Hash("demo-token")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected encoding: %q", encoded)
	}
	if !Verify("demo-token", encoded) {
		t.Fatal("correct secret must verify")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	encoded, err := Hash("demo-token")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if Verify("wrong", encoded) {
		t.Fatal("wrong secret must not verify")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("demo-token")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := Hash("demo-token")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same secret must differ")
	}
}

func TestVerifyMalformedEncodings(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!",
	}
	for _, encoded := range cases {
		if Verify("demo-token", encoded) {
			t.Fatalf("malformed encoding %q must not verify", encoded)
		}
	}
}
