package handlers

import "testing"

func TestIsValidBDPhone(t *testing.T) {
	valid := []string{
		"01712345678",
		"01312345678",
		"01912345678",
		"8801712345678",
		"+8801712345678",
		" 01712345678 ",
	}
	for _, phone := range valid {
		if !isValidBDPhone(phone) {
			t.Errorf("expected %q to validate", phone)
		}
	}

	invalid := []string{
		"12345",
		"017123",
		"01212345678",  // 2 is not a valid operator digit
		"017123456789", // too long
		"0171234567",   // too short
		"881712345678",
		"",
	}
	for _, phone := range invalid {
		if isValidBDPhone(phone) {
			t.Errorf("expected %q to be rejected", phone)
		}
	}
}
