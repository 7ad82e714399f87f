package models

import (
	"testing"
	"time"
)

func TestAgeFromBirthDate(t *testing.T) {
	tests := []struct {
		name        string
		dateOfBirth string
		currentYear int
		want        int
	}{
		{"full date", "2000-06-15", 2026, 26},
		{"slash date", "1990/01/31", 2026, 36},
		{"year only", "2000", 2026, 26},
		{"empty", "", 2026, 0},
		{"garbage", "abcd", 2026, 0},
		{"garbage with dash", "ab-cd", 2026, 0},
		{"future birth year clamps", "2030-01-01", 2026, 0},
		{"whitespace", "  1985-03-02 ", 2026, 41},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeFromBirthDate(tt.dateOfBirth, tt.currentYear); got != tt.want {
				t.Errorf("AgeFromBirthDate(%q, %d) = %d, want %d", tt.dateOfBirth, tt.currentYear, got, tt.want)
			}
		})
	}
}

func TestPatientAgeUsesCurrentYear(t *testing.T) {
	p := Patient{DateOfBirth: "2000-06-15"}
	want := time.Now().Year() - 2000
	if got := p.Age(); got != want {
		t.Errorf("Age() = %d, want %d", got, want)
	}
}

func TestNormalizePaymentStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"COMPLETED", PaymentSuccess},
		{"completed", PaymentSuccess},
		{"Success", PaymentSuccess},
		{"pending", PaymentPending},
		{" FAILED ", PaymentFailed},
		{"refunded", PaymentRefunded},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizePaymentStatus(tt.in); got != tt.want {
			t.Errorf("NormalizePaymentStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePaymentStatusIdempotent(t *testing.T) {
	for _, s := range []string{"COMPLETED", "success", "PENDING", "failed"} {
		once := NormalizePaymentStatus(s)
		if twice := NormalizePaymentStatus(once); twice != once {
			t.Errorf("normalization of %q not idempotent: %q -> %q", s, once, twice)
		}
	}
}
