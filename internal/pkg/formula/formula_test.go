package formula

import (
	"math"
	"testing"
)

func TestEvalArithmetic(t *testing.T) {
	vars := map[string]float64{
		"basic_pay":   30000,
		"month_days":  30,
		"paid_days":   22,
		"ot_pay":      1500,
		"hra_percent": 40,
	}

	cases := []struct {
		expr string
		want float64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 / 4", 2.5},
		{"-5 + 3", -2},
		{"basic_pay / month_days", 1000},
		{"basic_pay / month_days * paid_days", 22000},
		{"basic_pay * hra_percent / 100", 12000},
		{"min(basic_pay, 15000)", 15000},
		{"max(0, paid_days - month_days)", 0},
		{"round(10.456, 2)", 10.46},
		{"round(10.5)", 11},
		{"floor(10.9)", 10},
		{"ceil(10.1)", 11},
		{"abs(-42.5)", 42.5},
		{"min(1, 2, 3)", 1},
		{"max(1, 2, 3)", 3},
		{"paid_days > 20 ? 500 : 0", 500},
		{"paid_days > 25 ? 500 : 0", 0},
		{"paid_days >= 22 && month_days == 30 ? 1 : 2", 1},
		{"basic_pay + ot_pay", 31500},
		{"3.50 * 2", 7},
	}

	for _, c := range cases {
		got := Eval(c.expr, vars)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Eval(%q) = %v, want %v", c.expr, got, c.want)
		}
	}
}

func TestEvalFailsClosed(t *testing.T) {
	vars := map[string]float64{"basic_pay": 30000}

	// Every one of these must yield zero, never panic.
	cases := []string{
		"",
		"unknown_var * 2",
		"basic_pay +",
		"basic_pay ** 2",
		"basic_pay / 0",
		"system('rm -rf /')",
		"basic_pay; drop table employees",
		"basic_pay.toString()",
		"eval(basic_pay)",
		"min()",
		"round(1, 2, 3)",
		"1..2 + 3",
		"basic_pay > ? 1 : 2",
		"(basic_pay",
		"basic_pay)",
		"#basic_pay",
	}

	for _, expr := range cases {
		if got := Eval(expr, vars); got != 0 {
			t.Errorf("Eval(%q) = %v, want 0", expr, got)
		}
	}
}

func TestValidateRejectsUnknownIdentifiers(t *testing.T) {
	known := func(name string) bool { return name == "basic_pay" }

	if err := Validate("min(basic_pay, 15000) * 0.12", known); err != nil {
		t.Errorf("Validate(valid formula) = %v, want nil", err)
	}
	if err := Validate("basic_pay + hra", known); err == nil {
		t.Error("Validate should reject identifier not in the allow-list")
	}
	if err := Validate("exec(basic_pay)", known); err == nil {
		t.Error("Validate should reject unknown function names")
	}
}

func TestTryEvalReportsCause(t *testing.T) {
	_, err := TryEval("mystery + 1", map[string]float64{})
	if err == nil {
		t.Fatal("TryEval should return an error for unknown identifiers")
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Basic Pay", "basic_pay"},
		{"OT Pay", "ot_pay"},
		{"  Paid Days  ", "paid_days"},
		{"HRA (40%)", "hra_40"},
		{"Net-Salary", "netsalary"},
		{"ESI Employee", "esi_employee"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeKey(c.in); got != c.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
