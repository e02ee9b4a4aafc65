package validator

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{"+919876543210", "9876543210"}
	for _, phone := range valid {
		if err := ValidatePhone(phone); err != nil {
			t.Errorf("ValidatePhone(%q) = %v", phone, err)
		}
	}
	invalid := []string{"", "12345", "98765-43210", "+91 98765 43210"}
	for _, phone := range invalid {
		if err := ValidatePhone(phone); err == nil {
			t.Errorf("ValidatePhone(%q) accepted", phone)
		}
	}
}

func TestEnumChecks(t *testing.T) {
	if !ValidTransactionType("credit") || !ValidTransactionType("debit") {
		t.Error("credit/debit rejected")
	}
	if ValidTransactionType("refund") {
		t.Error("refund accepted")
	}
	if !ValidInvestmentType("mutual_fund") || ValidInvestmentType("crypto") {
		t.Error("investment type check wrong")
	}
	if !ValidInsightType("savings") || ValidInsightType("weather") {
		t.Error("insight type check wrong")
	}
	if !ValidPriority("high") || ValidPriority("urgent") {
		t.Error("priority check wrong")
	}
	if !ValidFrequency("monthly") || ValidFrequency("weekly") {
		t.Error("frequency check wrong")
	}
}
