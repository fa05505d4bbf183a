package scd

import (
	"reflect"
	"testing"
)

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("type1"); err != nil || m != Type1 {
		t.Errorf("ParseMode(type1) = %v, %v", m, err)
	}
	if m, err := ParseMode("type2"); err != nil || m != Type2 {
		t.Errorf("ParseMode(type2) = %v, %v", m, err)
	}
	if _, err := ParseMode("type3"); err == nil {
		t.Error("Expected error for type3")
	}
	if _, err := ParseMode(""); err == nil {
		t.Error("Expected error for empty mode")
	}
}

func TestPolicyFromConfig(t *testing.T) {
	p, err := PolicyFromConfig(map[string]string{
		"customer_segment": "type2",
		"email":            "type1",
	})
	if err != nil {
		t.Fatalf("PolicyFromConfig failed: %v", err)
	}
	if p.Mode("customer_segment") != Type2 {
		t.Error("Expected customer_segment to be type2")
	}
	if p.Mode("email") != Type1 {
		t.Error("Expected email to be type1")
	}
	// Unconfigured attributes default to type1.
	if p.Mode("phone") != Type1 {
		t.Error("Expected unconfigured attribute to default to type1")
	}

	if _, err := PolicyFromConfig(map[string]string{"x": "bogus"}); err == nil {
		t.Error("Expected error for bogus mode")
	}
}

func TestDecide(t *testing.T) {
	policy := Policy{
		"customer_segment": Type2,
		"manager":          Type2,
	}

	tests := []struct {
		name        string
		current     map[string]string
		incoming    map[string]string
		wantAction  Action
		wantChanged []string
	}{
		{
			name:       "no changes",
			current:    map[string]string{"email": "a@b.com", "customer_segment": "Regular"},
			incoming:   map[string]string{"email": "a@b.com", "customer_segment": "Regular"},
			wantAction: ActionNone,
		},
		{
			name:        "type1 change only",
			current:     map[string]string{"email": "a@b.com", "customer_segment": "Regular"},
			incoming:    map[string]string{"email": "new@b.com", "customer_segment": "Regular"},
			wantAction:  ActionUpdate,
			wantChanged: []string{"email"},
		},
		{
			name:        "type2 change",
			current:     map[string]string{"email": "a@b.com", "customer_segment": "Regular"},
			incoming:    map[string]string{"email": "a@b.com", "customer_segment": "VIP"},
			wantAction:  ActionVersion,
			wantChanged: []string{"customer_segment"},
		},
		{
			name:        "type2 wins over type1",
			current:     map[string]string{"email": "a@b.com", "customer_segment": "Regular"},
			incoming:    map[string]string{"email": "new@b.com", "customer_segment": "VIP"},
			wantAction:  ActionVersion,
			wantChanged: []string{"customer_segment", "email"},
		},
		{
			name:        "two type2 changes",
			current:     map[string]string{"customer_segment": "Regular", "manager": "Pat"},
			incoming:    map[string]string{"customer_segment": "VIP", "manager": "Sam"},
			wantAction:  ActionVersion,
			wantChanged: []string{"customer_segment", "manager"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, changed := policy.Decide(tt.current, tt.incoming)
			if action != tt.wantAction {
				t.Errorf("action = %s, want %s", action, tt.wantAction)
			}
			if !reflect.DeepEqual(changed, tt.wantChanged) {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if ActionNone.String() != "none" ||
		ActionUpdate.String() != "update" ||
		ActionVersion.String() != "version" {
		t.Error("Action names do not match")
	}
}
