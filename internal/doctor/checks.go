package doctor

import (
	"fmt"
	"os"

	"github.com/hubtty/hubtty/internal/config"
	"github.com/hubtty/hubtty/internal/paths"
)

// ConfigFileCheck verifies that a configuration file can be located.
type ConfigFileCheck struct {
	// Path is an explicit configuration path; empty searches the
	// standard locations.
	Path string
}

func (c *ConfigFileCheck) Name() string     { return "config-file" }
func (c *ConfigFileCheck) Category() string { return "config" }

func (c *ConfigFileCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	path, err := config.Locate(c.Path)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = fmt.Sprintf("create %s with at least one server entry", paths.DefaultConfigPath())
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("configuration found at %s", path)
	return result
}

// SchemaCheck verifies that the configuration document parses and
// passes schema validation.
type SchemaCheck struct {
	Path string
}

func (c *SchemaCheck) Name() string     { return "config-schema" }
func (c *SchemaCheck) Category() string { return "config" }

func (c *SchemaCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	path, err := config.Locate(c.Path)
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "no configuration file to validate"
		return result
	}

	if _, err := config.Load(path); err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = fmt.Sprintf("fix the reported key in %s", path)
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%s is valid", path)
	return result
}

// AuthFileCheck verifies the credential cache permissions. A cache
// readable by other users leaks API tokens.
type AuthFileCheck struct {
	// Path overrides the credential cache location; empty uses the
	// default.
	Path string
}

func (c *AuthFileCheck) Name() string     { return "auth-file-permissions" }
func (c *AuthFileCheck) Category() string { return "auth" }

func (c *AuthFileCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	path := c.Path
	if path == "" {
		path = paths.DefaultAuthPath()
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "no credential cache yet; a token will be acquired on first use"
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		return result
	}

	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%s has mode %04o, tokens are readable by other users", path, perm)
		result.FixHint = fmt.Sprintf("chmod 600 %s", path)
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%s is owner-only", path)
	return result
}

// GitRootCheck verifies that the selected server's git-root directory
// exists, because clones land there.
type GitRootCheck struct {
	// GitRoot is the normalized git-root of the selected server.
	GitRoot string
}

func (c *GitRootCheck) Name() string     { return "git-root" }
func (c *GitRootCheck) Category() string { return "git" }

func (c *GitRootCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	info, err := os.Stat(c.GitRoot)
	if os.IsNotExist(err) {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("git-root %s does not exist", c.GitRoot)
		result.FixHint = fmt.Sprintf("mkdir -p %s", c.GitRoot)
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		return result
	}
	if !info.IsDir() {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("git-root %s is not a directory", c.GitRoot)
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("git-root %s exists", c.GitRoot)
	return result
}
