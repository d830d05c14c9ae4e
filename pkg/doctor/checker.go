package doctor

import (
	"runtime"
	"sync"
)

// Checker runs environment checks for the appliance.
type Checker struct {
	executor   CommandExecutor
	env        EnvGetter
	platform   string
	payloadDir string // Directory holding the assistant files, "" when unknown
}

// NewChecker creates a new Checker with the real command executor.
func NewChecker() *Checker {
	return &Checker{
		executor: &RealExecutor{},
		env:      &RealEnvGetter{},
		platform: runtime.GOOS,
	}
}

// NewCheckerWithExecutor creates a new Checker with a custom executor (for testing).
func NewCheckerWithExecutor(exec CommandExecutor) *Checker {
	return &Checker{
		executor: exec,
		env:      &RealEnvGetter{},
		platform: runtime.GOOS,
	}
}

// SetEnvGetter overrides the environment lookup (for testing).
func (c *Checker) SetEnvGetter(env EnvGetter) {
	c.env = env
}

// SetPayloadDir sets the directory checked for the assistant files.
func (c *Checker) SetPayloadDir(dir string) {
	c.payloadDir = dir
}

// CheckAll runs all applicable checks and returns groups with results.
func (c *Checker) CheckAll() []CheckGroup {
	groups := GroupsFor(c.platform)
	result := make([]CheckGroup, 0, len(groups))

	for _, group := range groups {
		result = append(result, c.CheckGroup(group.ID))
	}

	return result
}

// CheckAllAsync runs all checks concurrently and returns groups with results.
func (c *Checker) CheckAllAsync() []CheckGroup {
	groups := GroupsFor(c.platform)
	result := make([]CheckGroup, len(groups))
	var wg sync.WaitGroup

	for i, group := range groups {
		wg.Add(1)
		go func(idx int, g CheckGroup) {
			defer wg.Done()
			result[idx] = c.CheckGroup(g.ID)
		}(i, group)
	}

	wg.Wait()
	return result
}

// CheckGroup runs all checks for a specific group.
func (c *Checker) CheckGroup(groupID string) CheckGroup {
	def, ok := GetGroupDefinition(groupID)
	if !ok {
		return CheckGroup{
			ID:   groupID,
			Name: "Unknown",
		}
	}

	group := CheckGroup{
		ID:          groupID,
		Name:        def.Name,
		Description: def.Description,
		Platform:    def.Platform,
	}

	for _, checkID := range def.CheckIDs {
		check := c.runCheck(checkID)
		group.Checks = append(group.Checks, check)
	}

	return group
}

// runCheck runs a specific check by ID.
func (c *Checker) runCheck(checkID string) Check {
	switch checkID {
	case IDPython:
		return CheckPython(c.executor)
	case IDPip:
		return CheckPip(c.executor)
	case IDVenv:
		return CheckVenv(c.executor)
	case IDAplay:
		return CheckAplay(c.executor)
	case IDArecord:
		return CheckArecord(c.executor)
	case IDEspeak:
		return CheckEspeak(c.executor)
	case IDFlac:
		return CheckFlac(c.executor)
	case IDEnvFile:
		return CheckEnvFile(c.executor, c.payloadDir)
	case IDAPIKey:
		return CheckAPIKey(c.env, c.payloadDir)
	case IDRequirements:
		return CheckRequirements(c.executor, c.payloadDir)
	case IDEntryScript:
		return CheckEntryScript(c.executor, c.payloadDir)
	case IDUnitFile:
		return CheckUnitFile(c.executor)
	case IDUnitEnabled:
		return CheckUnitEnabled(c.executor)
	case IDUnitActive:
		return CheckUnitActive(c.executor)
	default:
		return Check{
			ID:      checkID,
			Name:    checkID,
			Status:  StatusError,
			Message: "unknown check",
		}
	}
}

// GetCheck runs a single check by ID.
func (c *Checker) GetCheck(checkID string) Check {
	return c.runCheck(checkID)
}

// Summary represents an overall health summary.
type Summary struct {
	Total    int
	OK       int
	Missing  int
	Warnings int
	Errors   int
}

// GetSummary returns a summary of check results.
func (c *Checker) GetSummary(groups []CheckGroup) Summary {
	var summary Summary

	for _, group := range groups {
		for _, check := range group.Checks {
			summary.Total++
			switch check.Status {
			case StatusOK:
				summary.OK++
			case StatusMissing:
				summary.Missing++
			case StatusWarning:
				summary.Warnings++
			case StatusError:
				summary.Errors++
			}
		}
	}

	return summary
}

// HasIssues returns true if any checks have issues.
func (c *Checker) HasIssues(groups []CheckGroup) bool {
	summary := c.GetSummary(groups)
	return summary.Missing > 0 || summary.Errors > 0
}
