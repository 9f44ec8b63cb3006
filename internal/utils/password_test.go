package utils

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash equals the plaintext")
	}
	if !CheckPasswordHash("secret123", hash) {
		t.Fatal("correct password did not verify")
	}
	if CheckPasswordHash("secret124", hash) {
		t.Fatal("wrong password verified")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("same", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("same", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestCheckPasswordHashMalformed(t *testing.T) {
	if CheckPasswordHash("whatever", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash verified")
	}
	if CheckPasswordHash("whatever", "") {
		t.Fatal("empty hash verified")
	}
}
