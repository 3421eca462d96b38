package security

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte("hello world"),
		[]byte(""),
		[]byte("\x00\x01\x02\x00binary\x00payload"),
		[]byte("exactly sixteen!"), // one full block
		bytes.Repeat([]byte("a"), 1000),
	}
	for _, plaintext := range cases {
		encoded, err := Encrypt("master-key", plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q) returned error: %v", plaintext, err)
		}
		decrypted, err := Decrypt("master-key", encoded)
		if err != nil {
			t.Fatalf("Decrypt of %q returned error: %v", plaintext, err)
		}
		if !bytes.Equal(decrypted, plaintext) {
			t.Fatalf("round trip mismatch: got %q, want %q", decrypted, plaintext)
		}
	}
}

func TestEncryptFreshIVPerCall(t *testing.T) {
	first, err := Encrypt("master-key", []byte("same plaintext"))
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	second, err := Encrypt("master-key", []byte("same plaintext"))
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ciphertexts for repeated encryption, got identical output")
	}
}

func TestDecryptWrongKey(t *testing.T) {
	encoded, err := Encrypt("master-key", []byte("secret"))
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	decrypted, err := Decrypt("other-key", encoded)
	if err == nil && bytes.Equal(decrypted, []byte("secret")) {
		t.Fatalf("Decrypt with wrong key recovered the plaintext")
	}
}

func TestDecryptMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"not base64 !!!",
		"YWJj", // too short for an IV
	}
	for _, encoded := range cases {
		if _, err := Decrypt("master-key", encoded); !errors.Is(err, ErrCiphertextInvalid) {
			t.Fatalf("Decrypt(%q) error = %v, want ErrCiphertextInvalid", encoded, err)
		}
	}
}

func TestCalculateHashDeterministic(t *testing.T) {
	first := CalculateHash("key", "ua", "en-US", "gzip")
	second := CalculateHash("key", "ua", "en-US", "gzip")
	if first == "" || first != second {
		t.Fatalf("expected stable non-empty hash, got %q and %q", first, second)
	}
	if CalculateHash("key", "ua", "en-GB", "gzip") == first {
		t.Fatalf("expected different inputs to produce different hashes")
	}
	if CalculateHash("other", "ua", "en-US", "gzip") == first {
		t.Fatalf("expected different keys to produce different hashes")
	}
	if CalculateHash("key") != "" {
		t.Fatalf("expected empty hash for no inputs")
	}
}

func TestHashVerifyPassword(t *testing.T) {
	hash, err := HashPassword("S3cret!pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !VerifyPassword(hash, "S3cret!pass") {
		t.Fatalf("VerifyPassword rejected the correct password")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatalf("VerifyPassword accepted a wrong password")
	}
}
