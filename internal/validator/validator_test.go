package validator

import "testing"

func TestValidateUsername(t *testing.T) {
	valid := []string{"john", "john_doe", "Admin01", "a_b_c_d"}
	for _, username := range valid {
		if err := ValidateUsername(username); err != nil {
			t.Fatalf("ValidateUsername(%q) = %v, want nil", username, err)
		}
	}

	invalid := []string{"", "abc", "1john", "_john", "john doe", "john@doe", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	for _, username := range invalid {
		if err := ValidateUsername(username); err == nil {
			t.Fatalf("ValidateUsername(%q) = nil, want error", username)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Passw0rd"); err != nil {
		t.Fatalf("ValidatePassword = %v, want nil", err)
	}

	invalid := []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"}
	for _, password := range invalid {
		if err := ValidatePassword(password); err == nil {
			t.Fatalf("ValidatePassword(%q) = nil, want error", password)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("john@example.com"); err != nil {
		t.Fatalf("ValidateEmail = %v, want nil", err)
	}
	for _, email := range []string{"", "not-an-email", "a@@b.com"} {
		if err := ValidateEmail(email); err == nil {
			t.Fatalf("ValidateEmail(%q) = nil, want error", email)
		}
	}
}

func TestValidateData(t *testing.T) {
	data := map[string]string{
		"username": "",
		"email":    "bad-email",
		"amount":   "5",
		"currency": "DOGE",
	}
	rules := map[string]string{
		"username": "required|min_length:4",
		"email":    "required|email",
		"amount":   "required|min:10|max:1000",
		"currency": "required|in:BTC,ETH,USDT",
	}

	violations := ValidateData(data, rules)
	if len(violations) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(violations), violations)
	}
	if violations["username"] != "Username is required." {
		t.Fatalf("unexpected username violation: %q", violations["username"])
	}
	if violations["amount"] != "Amount must be at least 10." {
		t.Fatalf("unexpected amount violation: %q", violations["amount"])
	}

	ok := ValidateData(map[string]string{
		"username": "john",
		"email":    "john@example.com",
		"amount":   "100",
		"currency": "BTC",
	}, rules)
	if len(ok) != 0 {
		t.Fatalf("expected no violations, got %v", ok)
	}
}

func TestValidateDataSkipsOptionalEmpty(t *testing.T) {
	violations := ValidateData(
		map[string]string{"phone": ""},
		map[string]string{"phone": "min_length:7"},
	)
	if len(violations) != 0 {
		t.Fatalf("optional empty field should not be validated, got %v", violations)
	}
}
