package validator

import "testing"

func TestValidateAmount(t *testing.T) {
	valid := []string{"1", "0.00000001", "10.5", "999999999.99999999", " 42 "}
	for _, amount := range valid {
		if err := ValidateAmount(amount); err != nil {
			t.Fatalf("ValidateAmount(%q) = %v, want nil", amount, err)
		}
	}

	invalid := []string{
		"",
		"0",
		"0.000000000",
		"-5",
		"+5",
		"1e9",
		"1,000",
		"10.",
		".5",
		"0.000000001",  // 9 decimal places
		"1000000000",   // at the magnitude cap
		"999999999999", // above the magnitude cap
		"abc",
	}
	for _, amount := range invalid {
		if err := ValidateAmount(amount); err == nil {
			t.Fatalf("ValidateAmount(%q) = nil, want error", amount)
		}
	}
}

func TestParseAmount(t *testing.T) {
	val, err := ParseAmount("123.456")
	if err != nil {
		t.Fatalf("ParseAmount returned error: %v", err)
	}
	if val != 123.456 {
		t.Fatalf("ParseAmount = %v, want 123.456", val)
	}

	if _, err := ParseAmount("-1"); err == nil {
		t.Fatalf("ParseAmount accepted a negative amount")
	}
}
