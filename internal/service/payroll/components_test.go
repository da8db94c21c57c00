package payroll

import (
	"context"
	"testing"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/employee"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRulePrefersMostSpecific(t *testing.T) {
	rules := []payroll.ComponentRule{
		{ID: "global", MasterID: "m-1", Amount: decimal.NewFromInt(100)},
		{ID: "dept", MasterID: "m-1", DepartmentID: "dept-1", Amount: decimal.NewFromInt(200)},
		{ID: "div", MasterID: "m-1", DepartmentID: "dept-1", DivisionID: "div-1", Amount: decimal.NewFromInt(300)},
	}

	rule, ok := resolveRule(rules, "m-1", "dept-1", "div-1")
	require.True(t, ok)
	assert.Equal(t, "div", rule.ID)

	rule, ok = resolveRule(rules, "m-1", "dept-1", "div-other")
	require.True(t, ok)
	assert.Equal(t, "dept", rule.ID)

	rule, ok = resolveRule(rules, "m-1", "dept-9", "")
	require.True(t, ok)
	assert.Equal(t, "global", rule.ID)

	_, ok = resolveRule(rules, "m-2", "dept-1", "div-1")
	assert.False(t, ok)
}

func TestIncludeMissingPolicyDepartmentBeatsGlobal(t *testing.T) {
	policies := []payroll.ComponentPolicy{
		{DepartmentID: "", IncludeMissingComponents: false},
		{DepartmentID: "dept-1", IncludeMissingComponents: true},
	}

	assert.True(t, includeMissingPolicy(policies, "dept-1"))
	assert.False(t, includeMissingPolicy(policies, "dept-2"))
	assert.True(t, includeMissingPolicy(nil, "dept-1"))
}

func TestRunOverrideBeatsRuleHierarchy(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "HRA", "earnings.allowanceAmount:HRA"))
	in.Masters = []payroll.ComponentMaster{
		{ID: "m-1", Name: "HRA", Type: payroll.ComponentTypeAllowance, IsActive: true},
	}
	in.Rules = []payroll.ComponentRule{
		{ID: "r-1", MasterID: "m-1", CalcType: payroll.CalcTypeFixed, Amount: decimal.NewFromInt(5000)},
	}
	in.Employee.Compensation.Allowances = []employee.ComponentOverride{
		{MasterID: "m-1", Name: "HRA", CalcType: "fixed", Amount: decimal.NewFromInt(7500)},
	}

	slip, _, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, slip.Earnings.Allowances, 1)
	assert.Equal(t, "7500", slip.Earnings.Allowances[0].Amount.String())
}

func TestRunPercentageOfConfiguredGross(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "HRA", "earnings.allowanceAmount:HRA"))
	in.Aggregate.PresentDays = 13
	in.Aggregate.PaidLeaveDays = 0
	in.Aggregate.WeeklyOffs = 0
	in.Aggregate.Holidays = 0
	in.Masters = []payroll.ComponentMaster{
		{ID: "m-1", Name: "HRA", Type: payroll.ComponentTypeAllowance, IsActive: true},
	}
	in.Rules = []payroll.ComponentRule{
		{ID: "r-1", MasterID: "m-1", CalcType: payroll.CalcTypePercentage, Percent: decimal.NewFromInt(10), Base: payroll.BaseGross},
	}

	slip, _, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	// Percentage of the configured gross, untouched by attendance.
	require.Len(t, slip.Earnings.Allowances, 1)
	assert.Equal(t, "3000", slip.Earnings.Allowances[0].Amount.String())
}

func TestRunPercentageOfComputedBasic(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "DA", "earnings.allowanceAmount:DA"))
	in.Aggregate = fullMonthAgg()
	in.Aggregate.PresentDays = 8
	in.Aggregate.PaidLeaveDays = 0
	in.Aggregate.WeeklyOffs = 0
	in.Aggregate.Holidays = 0
	in.Masters = []payroll.ComponentMaster{
		{ID: "m-1", Name: "DA", Type: payroll.ComponentTypeAllowance, IsActive: true},
	}
	in.Rules = []payroll.ComponentRule{
		{ID: "r-1", MasterID: "m-1", CalcType: payroll.CalcTypePercentage, Percent: decimal.NewFromInt(50), Base: payroll.BaseBasic},
	}

	slip, _, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	// Basic for 8 of 30 days is 8000; half of that.
	require.Len(t, slip.Earnings.Allowances, 1)
	assert.Equal(t, "4000", slip.Earnings.Allowances[0].Amount.String())
}

func TestRunClampsApplyAfterComputation(t *testing.T) {
	engine := NewEngine(nil)
	min := decimal.NewFromInt(500)
	max := decimal.NewFromInt(1500)
	in := testInput(fieldColumn(1, "HRA", "earnings.allowanceAmount:HRA"))
	in.Masters = []payroll.ComponentMaster{
		{ID: "m-1", Name: "HRA", Type: payroll.ComponentTypeAllowance, IsActive: true},
	}
	in.Rules = []payroll.ComponentRule{
		{
			ID: "r-1", MasterID: "m-1",
			CalcType: payroll.CalcTypePercentage, Percent: decimal.NewFromInt(10), Base: payroll.BaseGross,
			MinAmount: &min, MaxAmount: &max,
		},
	}

	slip, _, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	// 10% of 30000 is 3000, capped at 1500.
	require.Len(t, slip.Earnings.Allowances, 1)
	assert.Equal(t, "1500", slip.Earnings.Allowances[0].Amount.String())
}

func TestRunIncludeMissingPolicyDropsUnmatchedMasters(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "Total Allowances", "earnings.totalAllowances"))
	in.Masters = []payroll.ComponentMaster{
		{ID: "m-1", Name: "HRA", Type: payroll.ComponentTypeAllowance, IsActive: true},
		{ID: "m-2", Name: "Conveyance", Type: payroll.ComponentTypeAllowance, IsActive: true},
	}
	in.Rules = []payroll.ComponentRule{
		{ID: "r-1", MasterID: "m-1", CalcType: payroll.CalcTypeFixed, Amount: decimal.NewFromInt(1000)},
		{ID: "r-2", MasterID: "m-2", CalcType: payroll.CalcTypeFixed, Amount: decimal.NewFromInt(2000)},
	}
	in.Policies = []payroll.ComponentPolicy{
		{DepartmentID: "", IncludeMissingComponents: false},
	}
	in.Employee.Compensation.Allowances = []employee.ComponentOverride{
		{MasterID: "m-1", Name: "HRA", CalcType: "fixed", Amount: decimal.NewFromInt(1200)},
	}

	slip, _, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	// Conveyance has no override and the policy excludes it.
	require.Len(t, slip.Earnings.Allowances, 1)
	assert.Equal(t, "HRA", slip.Earnings.Allowances[0].Name)
	assert.Equal(t, "1200", slip.Earnings.TotalAllowances.String())
}

func TestRunBaseRulesApplyWhenEmployeeHasNoOverrides(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "Total Allowances", "earnings.totalAllowances"))
	in.Masters = []payroll.ComponentMaster{
		{ID: "m-1", Name: "HRA", Type: payroll.ComponentTypeAllowance, IsActive: true},
	}
	in.Rules = []payroll.ComponentRule{
		{ID: "r-1", MasterID: "m-1", CalcType: payroll.CalcTypeFixed, Amount: decimal.NewFromInt(1000)},
	}
	in.Policies = []payroll.ComponentPolicy{
		{DepartmentID: "", IncludeMissingComponents: false},
	}

	slip, _, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	// The policy only gates employees who carry overrides.
	assert.Equal(t, "1000", slip.Earnings.TotalAllowances.String())
}

func TestRunAdHocOverrideWithoutMaster(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "Special", "earnings.allowanceAmount:Special Duty"))
	in.Employee.Compensation.Allowances = []employee.ComponentOverride{
		{Name: "Special Duty", CalcType: "fixed", Amount: decimal.NewFromInt(800)},
	}

	slip, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, slip.Earnings.Allowances, 1)
	assert.Equal(t, "Special Duty", slip.Earnings.Allowances[0].Name)
	assert.Equal(t, 800.0, row.Get("Special"))
}
